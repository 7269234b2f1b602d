package pgquery

// parseAlterStatement parses the ALTER statements of tables and table-like
// relations, schemas, triggers, rules and functions.
func (p *Parser) parseAlterStatement() (_ *Node, err error) {
	assert(p.peek() == ALTER)
	p.lex()

	switch x := p.next(); x.Tok {
	case TABLE:
		p.lex()
		return p.parseAlterRelation(ObjectTable)
	case INDEX:
		p.lex()
		return p.parseAlterRelation(ObjectIndex)
	case SEQUENCE:
		p.lex()
		return p.parseAlterRelation(ObjectSequence)
	case VIEW:
		p.lex()
		return p.parseAlterRelation(ObjectView)
	case MATERIALIZED:
		if err := p.expectSeq(MATERIALIZED, VIEW); err != nil {
			return nil, err
		}
		return p.parseAlterRelation(ObjectMatView)
	case SCHEMA:
		p.lex()
		return p.parseAlterSchema()
	case TRIGGER, RULE:
		p.lex()
		typ := ObjectTrigger
		if x.Tok == RULE {
			typ = ObjectRule
		}
		return p.parseAlterOnRelation(typ)
	case FUNCTION:
		p.lex()
		return p.parseAlterFunction()
	}
	return nil, p.errorUnexpected()
}

// newRenameStmt returns a RENAMESTMT. Its enum fields are always present.
func newRenameStmt(typ, relType ObjectType, rel *Node, object, objarg List, subname, newname string, missingOK bool) *Node {
	return NewNode(RenameStmt).
		SetInt("renameType", int(typ)).
		SetInt("relationType", int(relType)).
		Set(RelationField, rel).
		Set("object", object).
		Set("objarg", objarg).
		Set("subname", Text(subname)).
		Set("newname", Text(newname)).
		SetInt("behavior", DropRestrict).
		Set("missing_ok", Boolean(missingOK))
}

func newAlterOwnerStmt(typ ObjectType, object, objarg List, owner string) *Node {
	return NewNode(AlterOwnerStmt).
		SetInt("objectType", int(typ)).
		Set("object", object).
		Set("objarg", objarg).
		Set("newowner", Text(owner))
}

// parseRenameTo parses RENAME TO name.
func (p *Parser) parseRenameTo() (string, error) {
	if err := p.expectSeq(RENAME, TO); err != nil {
		return "", err
	}
	return p.parseColId()
}

// parseAlterRelation parses ALTER TABLE|INDEX|SEQUENCE|VIEW|MATERIALIZED
// VIEW: either a RENAME or a list of commands.
func (p *Parser) parseAlterRelation(typ ObjectType) (_ *Node, err error) {
	missingOK := p.parseIfExists()
	var rel *Node
	if typ == ObjectTable {
		rel, err = p.parseRelationExpr()
	} else {
		rel, err = p.parseQualifiedName()
	}
	if err != nil {
		return nil, err
	}

	if p.accept(RENAME) {
		return p.parseRenameRelation(typ, rel, missingOK)
	}

	var cmds List
	for {
		cmd, err := p.parseAlterTableCmd()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
		if !p.accept(COMMA) {
			break
		}
	}
	return NewNode(AlterTableStmt).
		Set(RelationField, rel).
		Set("cmds", cmds).
		SetInt("relkind", int(typ)).
		Set("missing_ok", Boolean(missingOK)), nil
}

// parseRenameRelation parses the rest of ALTER ... RENAME: the relation
// itself, a column or a table constraint.
func (p *Parser) parseRenameRelation(typ ObjectType, rel *Node, missingOK bool) (_ *Node, err error) {
	if p.accept(TO) {
		name, err := p.parseColId()
		if err != nil {
			return nil, err
		}
		return newRenameStmt(typ, ObjectAggregate, rel, nil, nil, "", name, missingOK), nil
	}

	renameType := ObjectColumn
	switch {
	case typ == ObjectTable && p.accept(CONSTRAINT):
		renameType = ObjectConstraint
	case typ == ObjectTable || typ == ObjectView || typ == ObjectMatView:
		p.accept(COLUMN)
	default:
		return nil, p.errorUnexpected()
	}
	old, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TO); err != nil {
		return nil, err
	}
	name, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	relType := typ
	if renameType == ObjectConstraint {
		relType = ObjectAggregate
	}
	return newRenameStmt(renameType, relType, rel, nil, nil, old, name, missingOK), nil
}

func newAlterTableCmd(typ AlterTableType, name string, def Value) *Node {
	return NewNode(AlterTableCmd).
		SetInt("subtype", int(typ)).
		Set("name", Text(name)).
		Set("def", def).
		SetInt("behavior", DropRestrict)
}

// parseAlterTableCmd parses one command of ALTER TABLE.
func (p *Parser) parseAlterTableCmd() (_ *Node, err error) {
	switch p.lex().Tok {
	case ADD:
		switch p.peek() {
		case CONSTRAINT, CHECK, UNIQUE, PRIMARY, FOREIGN:
			c, err := p.parseTableConstraint()
			if err != nil {
				return nil, err
			}
			return newAlterTableCmd(ATAddConstraint, "", c), nil
		}
		p.accept(COLUMN)
		def, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		return newAlterTableCmd(ATAddColumn, "", def), nil

	case DROP:
		typ := ATDropColumn
		if p.accept(CONSTRAINT) {
			typ = ATDropConstraint
		} else {
			p.accept(COLUMN)
		}
		missingOK := p.parseIfExists()
		name, err := p.parseColId()
		if err != nil {
			return nil, err
		}
		cmd := newAlterTableCmd(typ, name, nil)
		cmd.setField("behavior", Integer(p.parseOptDropBehavior()))
		return cmd.Set("missing_ok", Boolean(missingOK)), nil

	case ALTER:
		p.accept(COLUMN)
		x := p.next()
		name, err := p.parseColId()
		if err != nil {
			return nil, err
		}
		return p.parseAlterColumnCmd(name, x)

	case OWNER:
		if _, err := p.expect(TO); err != nil {
			return nil, err
		}
		owner, err := p.parseNonReservedWord()
		if err != nil {
			return nil, err
		}
		return newAlterTableCmd(ATChangeOwner, owner, nil), nil

	case VALIDATE:
		if _, err := p.expect(CONSTRAINT); err != nil {
			return nil, err
		}
		name, err := p.parseColId()
		if err != nil {
			return nil, err
		}
		return newAlterTableCmd(ATValidateConstraint, name, nil), nil

	case CLUSTER:
		if _, err := p.expect(ON); err != nil {
			return nil, err
		}
		name, err := p.parseColId()
		if err != nil {
			return nil, err
		}
		return newAlterTableCmd(ATClusterOn, name, nil), nil

	case SET:
		switch {
		case p.acceptSeq(WITH, OIDS):
			return newAlterTableCmd(ATAddOids, "", nil), nil
		case p.acceptSeq(WITHOUT, OIDS):
			return newAlterTableCmd(ATDropOids, "", nil), nil
		case p.acceptSeq(WITHOUT, CLUSTER):
			return newAlterTableCmd(ATDropCluster, "", nil), nil
		case p.accept(TABLESPACE):
			name, err := p.parseColId()
			if err != nil {
				return nil, err
			}
			return newAlterTableCmd(ATSetTableSpace, name, nil), nil
		case p.peek() == LP:
			options, err := p.parseRelOptions()
			if err != nil {
				return nil, err
			}
			return newAlterTableCmd(ATSetRelOptions, "", options), nil
		}

	case RESET:
		options, err := p.parseRelOptions()
		if err != nil {
			return nil, err
		}
		return newAlterTableCmd(ATResetRelOptions, "", options), nil

	default:
		p.unlex()
	}
	return nil, p.errorUnexpected()
}

// parseAlterColumnCmd parses the rest of ALTER [COLUMN] name.
func (p *Parser) parseAlterColumnCmd(name string, col Lexeme) (_ *Node, err error) {
	switch {
	case p.acceptSeq(SET, DEFAULT):
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return newAlterTableCmd(ATColumnDefault, name, expr), nil
	case p.acceptSeq(DROP, DEFAULT):
		return newAlterTableCmd(ATColumnDefault, name, nil), nil
	case p.acceptSeq(SET, NOT, NULL):
		return newAlterTableCmd(ATSetNotNull, name, nil), nil
	case p.acceptSeq(DROP, NOT, NULL):
		return newAlterTableCmd(ATDropNotNull, name, nil), nil
	case p.acceptSeq(SET, STATISTICS):
		n, err := p.parseNumericOnly()
		if err != nil {
			return nil, err
		}
		if _, ok := n.(IntegerLit); !ok {
			return nil, p.errorAt(p.at(p.i - 1))
		}
		return newAlterTableCmd(ATSetStatistics, name, n), nil
	case p.acceptSeq(SET, STORAGE):
		storage, err := p.parseColId()
		if err != nil {
			return nil, err
		}
		return newAlterTableCmd(ATSetStorage, name, StringLit(storage)), nil
	case p.acceptSeq(SET, DATA, TYPE), p.accept(TYPE):
		typ, err := p.parseTypename()
		if err != nil {
			return nil, err
		}
		def := NewNode(ColumnDef).Set("typeName", typ)
		if p.peek() == COLLATE {
			coll, err := p.parseCollateClause()
			if err != nil {
				return nil, err
			}
			def.setOrdered(columnDefFields, "collClause", coll)
		}
		if p.accept(USING) {
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			def.setOrdered(columnDefFields, "raw_default", expr)
		}
		def.SetLocation(col.Pos.Offset)
		return newAlterTableCmd(ATAlterColumnType, name, def), nil
	}
	return nil, p.errorUnexpected()
}

// parseAlterSchema parses ALTER SCHEMA name RENAME TO|OWNER TO.
func (p *Parser) parseAlterSchema() (_ *Node, err error) {
	name, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	if p.acceptSeq(OWNER, TO) {
		owner, err := p.parseNonReservedWord()
		if err != nil {
			return nil, err
		}
		return newAlterOwnerStmt(ObjectSchema, names(name), nil, owner), nil
	}
	newname, err := p.parseRenameTo()
	if err != nil {
		return nil, err
	}
	return newRenameStmt(ObjectSchema, ObjectAggregate, nil, nil, nil, name, newname, false), nil
}

// parseAlterOnRelation parses ALTER TRIGGER|RULE name ON table RENAME TO.
func (p *Parser) parseAlterOnRelation(typ ObjectType) (_ *Node, err error) {
	name, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ON); err != nil {
		return nil, err
	}
	rel, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	newname, err := p.parseRenameTo()
	if err != nil {
		return nil, err
	}
	return newRenameStmt(typ, ObjectAggregate, rel, nil, nil, name, newname, false), nil
}

// parseAlterFunction parses ALTER FUNCTION f(args) RENAME TO|OWNER TO.
func (p *Parser) parseAlterFunction() (_ *Node, err error) {
	name, args, err := p.parseFunctionWithArgTypes()
	if err != nil {
		return nil, err
	}
	if p.acceptSeq(OWNER, TO) {
		owner, err := p.parseNonReservedWord()
		if err != nil {
			return nil, err
		}
		return newAlterOwnerStmt(ObjectFunction, name, args, owner), nil
	}
	newname, err := p.parseRenameTo()
	if err != nil {
		return nil, err
	}
	return newRenameStmt(ObjectFunction, ObjectAggregate, nil, name, args, "", newname, false), nil
}

// dropTypes maps the object words of DROP to their object types.
var dropTypes = map[Token]ObjectType{
	TABLE:      ObjectTable,
	SEQUENCE:   ObjectSequence,
	VIEW:       ObjectView,
	INDEX:      ObjectIndex,
	SCHEMA:     ObjectSchema,
	TYPE:       ObjectUserType,
	DOMAIN:     ObjectDomain,
	COLLATION:  ObjectCollation,
	CONVERSION: ObjectConversion,
	EXTENSION:  ObjectExtension,
}

func newDropStmt(objects, arguments List, typ ObjectType, behavior int, missingOK, concurrent bool) *Node {
	return NewNode(DropStmt).
		Set(ObjectsField, objects).
		Set("arguments", arguments).
		SetInt(RemoveTypeField, int(typ)).
		SetInt("behavior", behavior).
		Set("missing_ok", Boolean(missingOK)).
		Set("concurrent", Boolean(concurrent))
}

// parseDropStatement parses DROP of named objects, of triggers and rules
// on a table, and of functions.
func (p *Parser) parseDropStatement() (_ *Node, err error) {
	assert(p.peek() == DROP)
	p.lex()

	x := p.lex()
	typ, ok := dropTypes[x.Tok]
	switch {
	case ok:
	case x.Tok == MATERIALIZED && p.accept(VIEW):
		typ = ObjectMatView
	case x.Tok == FOREIGN && p.accept(TABLE):
		typ = ObjectForeignTable
	case x.Tok == EVENT && p.accept(TRIGGER):
		typ = ObjectEventTrigger
	case x.Tok == TRIGGER:
		return p.parseDropOnRelation(ObjectTrigger)
	case x.Tok == RULE:
		return p.parseDropOnRelation(ObjectRule)
	case x.Tok == FUNCTION:
		return p.parseDropFunction()
	default:
		p.unlex()
		return nil, p.errorUnexpected()
	}

	concurrent := typ == ObjectIndex && p.accept(CONCURRENTLY)
	missingOK := p.parseIfExists()
	objects, err := p.parseAnyNameList()
	if err != nil {
		return nil, err
	}
	return newDropStmt(objects, nil, typ, p.parseOptDropBehavior(), missingOK, concurrent), nil
}

// parseDropOnRelation parses DROP TRIGGER|RULE [IF EXISTS] name ON table.
// The object is the table name followed by the trigger or rule name.
func (p *Parser) parseDropOnRelation(typ ObjectType) (_ *Node, err error) {
	missingOK := p.parseIfExists()
	name, err := p.parseColId()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ON); err != nil {
		return nil, err
	}
	table, err := p.parseAnyName()
	if err != nil {
		return nil, err
	}
	object := append(names(table...), StringLit(name))
	return newDropStmt(List{object}, nil, typ, p.parseOptDropBehavior(), missingOK, false), nil
}

// parseDropFunction parses DROP FUNCTION [IF EXISTS] f(args).
func (p *Parser) parseDropFunction() (_ *Node, err error) {
	missingOK := p.parseIfExists()
	name, args, err := p.parseFunctionWithArgTypes()
	if err != nil {
		return nil, err
	}
	var arguments Value = args
	if len(args) == 0 {
		arguments = (*Node)(nil)
	}
	return newDropStmt(List{name}, List{arguments}, ObjectFunction, p.parseOptDropBehavior(), missingOK, false), nil
}
