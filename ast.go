package pgquery

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is a field value in the tree. It is one of Integer, Text,
// Boolean, List, *Node or one of the literal value types IntegerLit,
// FloatLit, StringLit, BitStringLit and NullLit.
type Value interface {
	value()
	appendJSON(buf *bytes.Buffer)
}

func (Integer) value()      {}
func (Text) value()         {}
func (Boolean) value()      {}
func (List) value()         {}
func (*Node) value()        {}
func (IntegerLit) value()   {}
func (FloatLit) value()     {}
func (StringLit) value()    {}
func (BitStringLit) value() {}
func (NullLit) value()      {}

// Integer is a plain numeric field such as a location or an enum code.
type Integer int64

// Text is a plain string field such as a relation name.
type Text string

// Boolean is a flag field. False flags are never stored.
type Boolean bool

// List is an ordered list of values.
type List []Value

// Literal value tags.
const (
	IntegerTag   = "Integer"
	FloatTag     = "Float"
	StringTag    = "String"
	BitStringTag = "BitString"
	NullTag      = "Null"
)

// IntegerLit is an integer value node.
type IntegerLit int64

// FloatLit is a numeric value node, kept as written.
type FloatLit string

// StringLit is a string value node. Names inside lists use it too.
type StringLit string

// BitStringLit is a bit string value node: a "b" or "x" marker followed by
// the digits as written.
type BitStringLit string

// NullLit is the SQL NULL value node.
type NullLit struct{}

// Tag returns the literal's tag.
func (IntegerLit) Tag() string   { return IntegerTag }
func (FloatLit) Tag() string     { return FloatTag }
func (StringLit) Tag() string    { return StringTag }
func (BitStringLit) Tag() string { return BitStringTag }
func (NullLit) Tag() string      { return NullTag }

// Field is a named value of a node.
type Field struct {
	Name  string
	Value Value
}

// Node is a tagged construct. Fields are kept in the order the grammar
// production fills them; absent fields are not stored.
type Node struct {
	Kind   NodeKind
	Fields []Field
}

// NewNode returns an empty node of kind.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// Set appends a field. Nil nodes, empty lists, empty text and false flags
// are dropped so absent fields never appear.
func (n *Node) Set(name string, v Value) *Node {
	if !absent(v) {
		n.Fields = append(n.Fields, Field{Name: name, Value: v})
	}
	return n
}

// setOrdered stores a field at the place order gives it among the fields
// already present. Absent values are dropped as in Set.
func (n *Node) setOrdered(order []string, name string, v Value) *Node {
	if absent(v) {
		return n
	}
	if n.setField(name, v) {
		return n
	}
	rank := func(s string) int {
		for i, o := range order {
			if o == s {
				return i
			}
		}
		return len(order)
	}
	r := rank(name)
	for i, f := range n.Fields {
		if rank(f.Name) > r {
			n.Fields = append(n.Fields, Field{})
			copy(n.Fields[i+1:], n.Fields[i:])
			n.Fields[i] = Field{Name: name, Value: v}
			return n
		}
	}
	n.Fields = append(n.Fields, Field{Name: name, Value: v})
	return n
}

// absent returns true for values that are never stored.
func absent(v Value) bool {
	switch v := v.(type) {
	case nil:
		return true
	case *Node:
		return v == nil
	case List:
		return len(v) == 0
	case Text:
		return v == ""
	case Boolean:
		return !bool(v)
	}
	return false
}

// SetInt appends an integer field.
func (n *Node) SetInt(name string, v int) *Node {
	return n.Set(name, Integer(v))
}

// setNonZero appends a plain counter or bit set field unless it is zero.
// Enum fields use SetInt and are always present.
func (n *Node) setNonZero(name string, v int) *Node {
	if v == 0 {
		return n
	}
	return n.SetInt(name, v)
}

// SetLocation appends the location field when loc is known.
func (n *Node) SetLocation(loc int) *Node {
	if loc < 0 {
		return n
	}
	return n.Set(LocationField, Integer(loc))
}

// Get returns the value of the named field or nil.
func (n *Node) Get(name string) Value {
	if n == nil {
		return nil
	}
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

// Has returns true if the named field is present.
func (n *Node) Has(name string) bool {
	return n.Get(name) != nil
}

// Node returns the named field if it holds a node.
func (n *Node) Node(name string) *Node {
	v, _ := n.Get(name).(*Node)
	return v
}

// List returns the named field if it holds a list.
func (n *Node) List(name string) List {
	v, _ := n.Get(name).(List)
	return v
}

// Text returns the named field if it holds text.
func (n *Node) Text(name string) string {
	v, _ := n.Get(name).(Text)
	return string(v)
}

// Int returns the named integer field and whether it is present.
func (n *Node) Int(name string) (int, bool) {
	v, ok := n.Get(name).(Integer)
	return int(v), ok
}

// Bool returns the named flag.
func (n *Node) Bool(name string) bool {
	v, _ := n.Get(name).(Boolean)
	return bool(v)
}

// Location returns the location field and whether it is present.
func (n *Node) Location() (int, bool) {
	return n.Int(LocationField)
}

// setField replaces the value of an existing field.
func (n *Node) setField(name string, v Value) bool {
	for i := range n.Fields {
		if n.Fields[i].Name == name {
			n.Fields[i].Value = v
			return true
		}
	}
	return false
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, Fields: make([]Field, len(n.Fields))}
	for i, f := range n.Fields {
		c.Fields[i] = Field{Name: f.Name, Value: cloneValue(f.Value)}
	}
	return c
}

func cloneValue(v Value) Value {
	switch v := v.(type) {
	case *Node:
		return v.Clone()
	case List:
		l := make(List, len(v))
		for i, x := range v {
			l[i] = cloneValue(x)
		}
		return l
	}
	return v
}

// String returns the JSON form of the node.
func (n *Node) String() string {
	if n == nil {
		return "null"
	}
	var buf bytes.Buffer
	n.appendJSON(&buf)
	return buf.String()
}

// MarshalJSON renders the node as {"KIND":{fields...}} with fields in
// production order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	n.appendJSON(&buf)
	return buf.Bytes(), nil
}

func (n *Node) appendJSON(buf *bytes.Buffer) {
	if n == nil {
		buf.WriteString("null")
		return
	}
	buf.WriteByte('{')
	appendString(buf, string(n.Kind))
	buf.WriteString(":{")
	for i, f := range n.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		appendString(buf, f.Name)
		buf.WriteByte(':')
		f.Value.appendJSON(buf)
	}
	buf.WriteString("}}")
}

func (v Integer) appendJSON(buf *bytes.Buffer) {
	buf.WriteString(strconv.FormatInt(int64(v), 10))
}

func (v Text) appendJSON(buf *bytes.Buffer) {
	appendString(buf, string(v))
}

func (v Boolean) appendJSON(buf *bytes.Buffer) {
	buf.WriteString(strconv.FormatBool(bool(v)))
}

func (v List) appendJSON(buf *bytes.Buffer) {
	buf.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		x.appendJSON(buf)
	}
	buf.WriteByte(']')
}

// MarshalJSON renders the list with its elements in order.
func (v List) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.appendJSON(&buf)
	return buf.Bytes(), nil
}

func (v IntegerLit) appendJSON(buf *bytes.Buffer) {
	buf.WriteString(`{"Integer":{"ival":`)
	buf.WriteString(strconv.FormatInt(int64(v), 10))
	buf.WriteString("}}")
}

func (v FloatLit) appendJSON(buf *bytes.Buffer) {
	appendTagged(buf, FloatTag, string(v))
}

func (v StringLit) appendJSON(buf *bytes.Buffer) {
	appendTagged(buf, StringTag, string(v))
}

func (v BitStringLit) appendJSON(buf *bytes.Buffer) {
	appendTagged(buf, BitStringTag, string(v))
}

func (NullLit) appendJSON(buf *bytes.Buffer) {
	buf.WriteString(`{"Null":{}}`)
}

func appendTagged(buf *bytes.Buffer, tag, s string) {
	buf.WriteString(`{"` + tag + `":{"str":`)
	appendString(buf, s)
	buf.WriteString("}}")
}

func appendString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1) // trailing newline
}

// MarshalStatements renders a statement list as a JSON array.
func MarshalStatements(stmts []*Node) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, n := range stmts {
		if i > 0 {
			buf.WriteByte(',')
		}
		n.appendJSON(&buf)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// names converts name parts to a list of string value nodes.
func names(parts ...string) List {
	l := make(List, len(parts))
	for i, s := range parts {
		l[i] = StringLit(s)
	}
	return l
}

// nameStrings returns the strings of a list of string value nodes.
func nameStrings(l List) []string {
	a := make([]string, 0, len(l))
	for _, v := range l {
		if s, ok := v.(StringLit); ok {
			a = append(a, string(s))
		}
	}
	return a
}
