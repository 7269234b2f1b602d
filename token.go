package pgquery

import (
	"fmt"
	"strconv"
	"strings"
)

var keywords = make(map[string]Token)

func init() {
	for i := keyword_beg + 1; i < keyword_end; i++ {
		keywords[tokens[i]] = i
	}
}

// Token is the set of lexical tokens of the PostgreSQL dialect.
type Token int

// The list of tokens.
const (
	// Special tokens
	ILLEGAL Token = iota
	EOF

	literal_beg
	IDENT  // name or "quoted name"
	ICONST // 123
	FCONST // 123.45, .1, 1e10
	SCONST // 'string', E'string', $$string$$
	BCONST // B'0101', X'EFFF'
	PARAM  // $1 or ?
	literal_end

	operator_beg
	OP      // any other operator, e.g. ||, @>, ~~
	EQ      // =
	NE      // <> or !=
	LT      // <
	LE      // <=
	GT      // >
	GE      // >=
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	CARET   // ^
	operator_end

	SEMI         // ;
	LP           // (
	RP           // )
	LBRACKET     // [
	RBRACKET     // ]
	COMMA        // ,
	DOT          // .
	DOT_DOT      // ..
	COLON        // :
	TYPECAST     // ::
	COLON_EQUALS // :=
	EQUALS_GT    // =>

	keyword_beg
	ABORT
	ABSOLUTE
	ACCESS
	ACTION
	ADD
	ADMIN
	AFTER
	AGGREGATE
	ALL
	ALSO
	ALTER
	ALWAYS
	ANALYSE
	ANALYZE
	AND
	ANY
	ARRAY
	AS
	ASC
	ASSERTION
	ASSIGNMENT
	ASYMMETRIC
	AT
	ATTRIBUTE
	AUTHORIZATION
	BACKWARD
	BEFORE
	BEGIN
	BETWEEN
	BIGINT
	BINARY
	BIT
	BOOLEAN
	BOTH
	BY
	CACHE
	CALLED
	CASCADE
	CASCADED
	CASE
	CAST
	CATALOG
	CHAIN
	CHAR
	CHARACTER
	CHARACTERISTICS
	CHECK
	CHECKPOINT
	CLASS
	CLOSE
	CLUSTER
	COALESCE
	COLLATE
	COLLATION
	COLUMN
	COMMENT
	COMMENTS
	COMMIT
	COMMITTED
	CONCURRENTLY
	CONFIGURATION
	CONNECTION
	CONSTRAINT
	CONSTRAINTS
	CONTENT
	CONTINUE
	CONVERSION
	COPY
	COST
	CREATE
	CROSS
	CSV
	CURRENT
	CURRENT_CATALOG
	CURRENT_DATE
	CURRENT_ROLE
	CURRENT_SCHEMA
	CURRENT_TIME
	CURRENT_TIMESTAMP
	CURRENT_USER
	CURSOR
	CYCLE
	DATA
	DATABASE
	DAY
	DEALLOCATE
	DEC
	DECIMAL
	DECLARE
	DEFAULT
	DEFAULTS
	DEFERRABLE
	DEFERRED
	DEFINER
	DELETE
	DELIMITER
	DELIMITERS
	DESC
	DICTIONARY
	DISABLE
	DISCARD
	DISTINCT
	DO
	DOCUMENT
	DOMAIN
	DOUBLE
	DROP
	EACH
	ELSE
	ENABLE
	ENCODING
	ENCRYPTED
	END
	ENUM
	ESCAPE
	EVENT
	EXCEPT
	EXCLUDE
	EXCLUDING
	EXCLUSIVE
	EXECUTE
	EXISTS
	EXPLAIN
	EXTENSION
	EXTERNAL
	EXTRACT
	FALSE
	FAMILY
	FETCH
	FILTER
	FIRST
	FLOAT
	FOLLOWING
	FOR
	FORCE
	FOREIGN
	FORWARD
	FREEZE
	FROM
	FULL
	FUNCTION
	FUNCTIONS
	GLOBAL
	GRANT
	GRANTED
	GREATEST
	GROUP
	HANDLER
	HAVING
	HEADER
	HOLD
	HOUR
	IDENTITY
	IF
	ILIKE
	IMMEDIATE
	IMMUTABLE
	IMPLICIT
	IN
	INCLUDING
	INCREMENT
	INDEX
	INDEXES
	INHERIT
	INHERITS
	INITIALLY
	INLINE
	INNER
	INOUT
	INPUT
	INSENSITIVE
	INSERT
	INSTEAD
	INT
	INTEGER
	INTERSECT
	INTERVAL
	INTO
	INVOKER
	IS
	ISNULL
	ISOLATION
	JOIN
	KEY
	LABEL
	LANGUAGE
	LARGE
	LAST
	LATERAL
	LEADING
	LEAKPROOF
	LEAST
	LEFT
	LEVEL
	LIKE
	LIMIT
	LISTEN
	LOAD
	LOCAL
	LOCALTIME
	LOCALTIMESTAMP
	LOCATION
	LOCK
	MAPPING
	MATCH
	MATERIALIZED
	MAXVALUE
	MINUTE
	MINVALUE
	MODE
	MONTH
	MOVE
	NAME
	NAMES
	NATIONAL
	NATURAL
	NCHAR
	NEXT
	NO
	NONE
	NOT
	NOTHING
	NOTIFY
	NOTNULL
	NOWAIT
	NULL
	NULLIF
	NULLS
	NUMERIC
	OBJECT
	OF
	OFF
	OFFSET
	OIDS
	ON
	ONLY
	OPERATOR
	OPTION
	OPTIONS
	OR
	ORDER
	ORDINALITY
	OUT
	OUTER
	OVER
	OVERLAPS
	OVERLAY
	OWNED
	OWNER
	PARSER
	PARTIAL
	PARTITION
	PASSING
	PASSWORD
	PLACING
	PLANS
	POSITION
	PRECEDING
	PRECISION
	PREPARE
	PREPARED
	PRESERVE
	PRIMARY
	PRIOR
	PRIVILEGES
	PROCEDURAL
	PROCEDURE
	PROGRAM
	QUOTE
	RANGE
	READ
	REAL
	REASSIGN
	RECHECK
	RECURSIVE
	REF
	REFERENCES
	REFRESH
	REINDEX
	RELATIVE
	RELEASE
	RENAME
	REPEATABLE
	REPLACE
	REPLICA
	RESET
	RESTART
	RESTRICT
	RETURNING
	RETURNS
	REVOKE
	RIGHT
	ROLE
	ROLLBACK
	ROW
	ROWS
	RULE
	SAVEPOINT
	SCHEMA
	SCROLL
	SEARCH
	SECOND
	SECURITY
	SELECT
	SEQUENCE
	SEQUENCES
	SERIALIZABLE
	SERVER
	SESSION
	SESSION_USER
	SET
	SETOF
	SHARE
	SHOW
	SIMILAR
	SIMPLE
	SMALLINT
	SNAPSHOT
	SOME
	STABLE
	STANDALONE
	START
	STATEMENT
	STATISTICS
	STDIN
	STDOUT
	STORAGE
	STRICT
	STRIP
	SUBSTRING
	SYMMETRIC
	SYSID
	SYSTEM
	TABLE
	TABLES
	TABLESPACE
	TEMP
	TEMPLATE
	TEMPORARY
	TEXT
	THEN
	TIME
	TIMESTAMP
	TO
	TRAILING
	TRANSACTION
	TREAT
	TRIGGER
	TRIM
	TRUE
	TRUNCATE
	TRUSTED
	TYPE
	TYPES
	UNBOUNDED
	UNCOMMITTED
	UNENCRYPTED
	UNION
	UNIQUE
	UNKNOWN
	UNLISTEN
	UNLOGGED
	UNTIL
	UPDATE
	USER
	USING
	VACUUM
	VALID
	VALIDATE
	VALIDATOR
	VALUE
	VALUES
	VARCHAR
	VARIADIC
	VARYING
	VERBOSE
	VERSION
	VIEW
	VIEWS
	VOLATILE
	WHEN
	WHERE
	WHITESPACE
	WINDOW
	WITH
	WITHIN
	WITHOUT
	WORK
	WRAPPER
	WRITE
	YEAR
	YES
	ZONE
	keyword_end

	token_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	ICONST: "ICONST",
	FCONST: "FCONST",
	SCONST: "SCONST",
	BCONST: "BCONST",
	PARAM:  "PARAM",

	OP:      "OP",
	EQ:      "=",
	NE:      "<>",
	LT:      "<",
	LE:      "<=",
	GT:      ">",
	GE:      ">=",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	CARET:   "^",

	SEMI:         ";",
	LP:           "(",
	RP:           ")",
	LBRACKET:     "[",
	RBRACKET:     "]",
	COMMA:        ",",
	DOT:          ".",
	DOT_DOT:      "..",
	COLON:        ":",
	TYPECAST:     "::",
	COLON_EQUALS: ":=",
	EQUALS_GT:    "=>",

	ABORT:             "ABORT",
	ABSOLUTE:          "ABSOLUTE",
	ACCESS:            "ACCESS",
	ACTION:            "ACTION",
	ADD:               "ADD",
	ADMIN:             "ADMIN",
	AFTER:             "AFTER",
	AGGREGATE:         "AGGREGATE",
	ALL:               "ALL",
	ALSO:              "ALSO",
	ALTER:             "ALTER",
	ALWAYS:            "ALWAYS",
	ANALYSE:           "ANALYSE",
	ANALYZE:           "ANALYZE",
	AND:               "AND",
	ANY:               "ANY",
	ARRAY:             "ARRAY",
	AS:                "AS",
	ASC:               "ASC",
	ASSERTION:         "ASSERTION",
	ASSIGNMENT:        "ASSIGNMENT",
	ASYMMETRIC:        "ASYMMETRIC",
	AT:                "AT",
	ATTRIBUTE:         "ATTRIBUTE",
	AUTHORIZATION:     "AUTHORIZATION",
	BACKWARD:          "BACKWARD",
	BEFORE:            "BEFORE",
	BEGIN:             "BEGIN",
	BETWEEN:           "BETWEEN",
	BIGINT:            "BIGINT",
	BINARY:            "BINARY",
	BIT:               "BIT",
	BOOLEAN:           "BOOLEAN",
	BOTH:              "BOTH",
	BY:                "BY",
	CACHE:             "CACHE",
	CALLED:            "CALLED",
	CASCADE:           "CASCADE",
	CASCADED:          "CASCADED",
	CASE:              "CASE",
	CAST:              "CAST",
	CATALOG:           "CATALOG",
	CHAIN:             "CHAIN",
	CHAR:              "CHAR",
	CHARACTER:         "CHARACTER",
	CHARACTERISTICS:   "CHARACTERISTICS",
	CHECK:             "CHECK",
	CHECKPOINT:        "CHECKPOINT",
	CLASS:             "CLASS",
	CLOSE:             "CLOSE",
	CLUSTER:           "CLUSTER",
	COALESCE:          "COALESCE",
	COLLATE:           "COLLATE",
	COLLATION:         "COLLATION",
	COLUMN:            "COLUMN",
	COMMENT:           "COMMENT",
	COMMENTS:          "COMMENTS",
	COMMIT:            "COMMIT",
	COMMITTED:         "COMMITTED",
	CONCURRENTLY:      "CONCURRENTLY",
	CONFIGURATION:     "CONFIGURATION",
	CONNECTION:        "CONNECTION",
	CONSTRAINT:        "CONSTRAINT",
	CONSTRAINTS:       "CONSTRAINTS",
	CONTENT:           "CONTENT",
	CONTINUE:          "CONTINUE",
	CONVERSION:        "CONVERSION",
	COPY:              "COPY",
	COST:              "COST",
	CREATE:            "CREATE",
	CROSS:             "CROSS",
	CSV:               "CSV",
	CURRENT:           "CURRENT",
	CURRENT_CATALOG:   "CURRENT_CATALOG",
	CURRENT_DATE:      "CURRENT_DATE",
	CURRENT_ROLE:      "CURRENT_ROLE",
	CURRENT_SCHEMA:    "CURRENT_SCHEMA",
	CURRENT_TIME:      "CURRENT_TIME",
	CURRENT_TIMESTAMP: "CURRENT_TIMESTAMP",
	CURRENT_USER:      "CURRENT_USER",
	CURSOR:            "CURSOR",
	CYCLE:             "CYCLE",
	DATA:              "DATA",
	DATABASE:          "DATABASE",
	DAY:               "DAY",
	DEALLOCATE:        "DEALLOCATE",
	DEC:               "DEC",
	DECIMAL:           "DECIMAL",
	DECLARE:           "DECLARE",
	DEFAULT:           "DEFAULT",
	DEFAULTS:          "DEFAULTS",
	DEFERRABLE:        "DEFERRABLE",
	DEFERRED:          "DEFERRED",
	DEFINER:           "DEFINER",
	DELETE:            "DELETE",
	DELIMITER:         "DELIMITER",
	DELIMITERS:        "DELIMITERS",
	DESC:              "DESC",
	DICTIONARY:        "DICTIONARY",
	DISABLE:           "DISABLE",
	DISCARD:           "DISCARD",
	DISTINCT:          "DISTINCT",
	DO:                "DO",
	DOCUMENT:          "DOCUMENT",
	DOMAIN:            "DOMAIN",
	DOUBLE:            "DOUBLE",
	DROP:              "DROP",
	EACH:              "EACH",
	ELSE:              "ELSE",
	ENABLE:            "ENABLE",
	ENCODING:          "ENCODING",
	ENCRYPTED:         "ENCRYPTED",
	END:               "END",
	ENUM:              "ENUM",
	ESCAPE:            "ESCAPE",
	EVENT:             "EVENT",
	EXCEPT:            "EXCEPT",
	EXCLUDE:           "EXCLUDE",
	EXCLUDING:         "EXCLUDING",
	EXCLUSIVE:         "EXCLUSIVE",
	EXECUTE:           "EXECUTE",
	EXISTS:            "EXISTS",
	EXPLAIN:           "EXPLAIN",
	EXTENSION:         "EXTENSION",
	EXTERNAL:          "EXTERNAL",
	EXTRACT:           "EXTRACT",
	FALSE:             "FALSE",
	FAMILY:            "FAMILY",
	FETCH:             "FETCH",
	FILTER:            "FILTER",
	FIRST:             "FIRST",
	FLOAT:             "FLOAT",
	FOLLOWING:         "FOLLOWING",
	FOR:               "FOR",
	FORCE:             "FORCE",
	FOREIGN:           "FOREIGN",
	FORWARD:           "FORWARD",
	FREEZE:            "FREEZE",
	FROM:              "FROM",
	FULL:              "FULL",
	FUNCTION:          "FUNCTION",
	FUNCTIONS:         "FUNCTIONS",
	GLOBAL:            "GLOBAL",
	GRANT:             "GRANT",
	GRANTED:           "GRANTED",
	GREATEST:          "GREATEST",
	GROUP:             "GROUP",
	HANDLER:           "HANDLER",
	HAVING:            "HAVING",
	HEADER:            "HEADER",
	HOLD:              "HOLD",
	HOUR:              "HOUR",
	IDENTITY:          "IDENTITY",
	IF:                "IF",
	ILIKE:             "ILIKE",
	IMMEDIATE:         "IMMEDIATE",
	IMMUTABLE:         "IMMUTABLE",
	IMPLICIT:          "IMPLICIT",
	IN:                "IN",
	INCLUDING:         "INCLUDING",
	INCREMENT:         "INCREMENT",
	INDEX:             "INDEX",
	INDEXES:           "INDEXES",
	INHERIT:           "INHERIT",
	INHERITS:          "INHERITS",
	INITIALLY:         "INITIALLY",
	INLINE:            "INLINE",
	INNER:             "INNER",
	INOUT:             "INOUT",
	INPUT:             "INPUT",
	INSENSITIVE:       "INSENSITIVE",
	INSERT:            "INSERT",
	INSTEAD:           "INSTEAD",
	INT:               "INT",
	INTEGER:           "INTEGER",
	INTERSECT:         "INTERSECT",
	INTERVAL:          "INTERVAL",
	INTO:              "INTO",
	INVOKER:           "INVOKER",
	IS:                "IS",
	ISNULL:            "ISNULL",
	ISOLATION:         "ISOLATION",
	JOIN:              "JOIN",
	KEY:               "KEY",
	LABEL:             "LABEL",
	LANGUAGE:          "LANGUAGE",
	LARGE:             "LARGE",
	LAST:              "LAST",
	LATERAL:           "LATERAL",
	LEADING:           "LEADING",
	LEAKPROOF:         "LEAKPROOF",
	LEAST:             "LEAST",
	LEFT:              "LEFT",
	LEVEL:             "LEVEL",
	LIKE:              "LIKE",
	LIMIT:             "LIMIT",
	LISTEN:            "LISTEN",
	LOAD:              "LOAD",
	LOCAL:             "LOCAL",
	LOCALTIME:         "LOCALTIME",
	LOCALTIMESTAMP:    "LOCALTIMESTAMP",
	LOCATION:          "LOCATION",
	LOCK:              "LOCK",
	MAPPING:           "MAPPING",
	MATCH:             "MATCH",
	MATERIALIZED:      "MATERIALIZED",
	MAXVALUE:          "MAXVALUE",
	MINUTE:            "MINUTE",
	MINVALUE:          "MINVALUE",
	MODE:              "MODE",
	MONTH:             "MONTH",
	MOVE:              "MOVE",
	NAME:              "NAME",
	NAMES:             "NAMES",
	NATIONAL:          "NATIONAL",
	NATURAL:           "NATURAL",
	NCHAR:             "NCHAR",
	NEXT:              "NEXT",
	NO:                "NO",
	NONE:              "NONE",
	NOT:               "NOT",
	NOTHING:           "NOTHING",
	NOTIFY:            "NOTIFY",
	NOTNULL:           "NOTNULL",
	NOWAIT:            "NOWAIT",
	NULL:              "NULL",
	NULLIF:            "NULLIF",
	NULLS:             "NULLS",
	NUMERIC:           "NUMERIC",
	OBJECT:            "OBJECT",
	OF:                "OF",
	OFF:               "OFF",
	OFFSET:            "OFFSET",
	OIDS:              "OIDS",
	ON:                "ON",
	ONLY:              "ONLY",
	OPERATOR:          "OPERATOR",
	OPTION:            "OPTION",
	OPTIONS:           "OPTIONS",
	OR:                "OR",
	ORDER:             "ORDER",
	ORDINALITY:        "ORDINALITY",
	OUT:               "OUT",
	OUTER:             "OUTER",
	OVER:              "OVER",
	OVERLAPS:          "OVERLAPS",
	OVERLAY:           "OVERLAY",
	OWNED:             "OWNED",
	OWNER:             "OWNER",
	PARSER:            "PARSER",
	PARTIAL:           "PARTIAL",
	PARTITION:         "PARTITION",
	PASSING:           "PASSING",
	PASSWORD:          "PASSWORD",
	PLACING:           "PLACING",
	PLANS:             "PLANS",
	POSITION:          "POSITION",
	PRECEDING:         "PRECEDING",
	PRECISION:         "PRECISION",
	PREPARE:           "PREPARE",
	PREPARED:          "PREPARED",
	PRESERVE:          "PRESERVE",
	PRIMARY:           "PRIMARY",
	PRIOR:             "PRIOR",
	PRIVILEGES:        "PRIVILEGES",
	PROCEDURAL:        "PROCEDURAL",
	PROCEDURE:         "PROCEDURE",
	PROGRAM:           "PROGRAM",
	QUOTE:             "QUOTE",
	RANGE:             "RANGE",
	READ:              "READ",
	REAL:              "REAL",
	REASSIGN:          "REASSIGN",
	RECHECK:           "RECHECK",
	RECURSIVE:         "RECURSIVE",
	REF:               "REF",
	REFERENCES:        "REFERENCES",
	REFRESH:           "REFRESH",
	REINDEX:           "REINDEX",
	RELATIVE:          "RELATIVE",
	RELEASE:           "RELEASE",
	RENAME:            "RENAME",
	REPEATABLE:        "REPEATABLE",
	REPLACE:           "REPLACE",
	REPLICA:           "REPLICA",
	RESET:             "RESET",
	RESTART:           "RESTART",
	RESTRICT:          "RESTRICT",
	RETURNING:         "RETURNING",
	RETURNS:           "RETURNS",
	REVOKE:            "REVOKE",
	RIGHT:             "RIGHT",
	ROLE:              "ROLE",
	ROLLBACK:          "ROLLBACK",
	ROW:               "ROW",
	ROWS:              "ROWS",
	RULE:              "RULE",
	SAVEPOINT:         "SAVEPOINT",
	SCHEMA:            "SCHEMA",
	SCROLL:            "SCROLL",
	SEARCH:            "SEARCH",
	SECOND:            "SECOND",
	SECURITY:          "SECURITY",
	SELECT:            "SELECT",
	SEQUENCE:          "SEQUENCE",
	SEQUENCES:         "SEQUENCES",
	SERIALIZABLE:      "SERIALIZABLE",
	SERVER:            "SERVER",
	SESSION:           "SESSION",
	SESSION_USER:      "SESSION_USER",
	SET:               "SET",
	SETOF:             "SETOF",
	SHARE:             "SHARE",
	SHOW:              "SHOW",
	SIMILAR:           "SIMILAR",
	SIMPLE:            "SIMPLE",
	SMALLINT:          "SMALLINT",
	SNAPSHOT:          "SNAPSHOT",
	SOME:              "SOME",
	STABLE:            "STABLE",
	STANDALONE:        "STANDALONE",
	START:             "START",
	STATEMENT:         "STATEMENT",
	STATISTICS:        "STATISTICS",
	STDIN:             "STDIN",
	STDOUT:            "STDOUT",
	STORAGE:           "STORAGE",
	STRICT:            "STRICT",
	STRIP:             "STRIP",
	SUBSTRING:         "SUBSTRING",
	SYMMETRIC:         "SYMMETRIC",
	SYSID:             "SYSID",
	SYSTEM:            "SYSTEM",
	TABLE:             "TABLE",
	TABLES:            "TABLES",
	TABLESPACE:        "TABLESPACE",
	TEMP:              "TEMP",
	TEMPLATE:          "TEMPLATE",
	TEMPORARY:         "TEMPORARY",
	TEXT:              "TEXT",
	THEN:              "THEN",
	TIME:              "TIME",
	TIMESTAMP:         "TIMESTAMP",
	TO:                "TO",
	TRAILING:          "TRAILING",
	TRANSACTION:       "TRANSACTION",
	TREAT:             "TREAT",
	TRIGGER:           "TRIGGER",
	TRIM:              "TRIM",
	TRUE:              "TRUE",
	TRUNCATE:          "TRUNCATE",
	TRUSTED:           "TRUSTED",
	TYPE:              "TYPE",
	TYPES:             "TYPES",
	UNBOUNDED:         "UNBOUNDED",
	UNCOMMITTED:       "UNCOMMITTED",
	UNENCRYPTED:       "UNENCRYPTED",
	UNION:             "UNION",
	UNIQUE:            "UNIQUE",
	UNKNOWN:           "UNKNOWN",
	UNLISTEN:          "UNLISTEN",
	UNLOGGED:          "UNLOGGED",
	UNTIL:             "UNTIL",
	UPDATE:            "UPDATE",
	USER:              "USER",
	USING:             "USING",
	VACUUM:            "VACUUM",
	VALID:             "VALID",
	VALIDATE:          "VALIDATE",
	VALIDATOR:         "VALIDATOR",
	VALUE:             "VALUE",
	VALUES:            "VALUES",
	VARCHAR:           "VARCHAR",
	VARIADIC:          "VARIADIC",
	VARYING:           "VARYING",
	VERBOSE:           "VERBOSE",
	VERSION:           "VERSION",
	VIEW:              "VIEW",
	VIEWS:             "VIEWS",
	VOLATILE:          "VOLATILE",
	WHEN:              "WHEN",
	WHERE:             "WHERE",
	WHITESPACE:        "WHITESPACE",
	WINDOW:            "WINDOW",
	WITH:              "WITH",
	WITHIN:            "WITHIN",
	WITHOUT:           "WITHOUT",
	WORK:              "WORK",
	WRAPPER:           "WRAPPER",
	WRITE:             "WRITE",
	YEAR:              "YEAR",
	YES:               "YES",
	ZONE:              "ZONE",
}

// KeywordCategory classifies a keyword by where it may stand in for a name.
type KeywordCategory int

const (
	NotKeyword KeywordCategory = iota
	UnreservedKeyword
	ColNameKeyword
	TypeFuncNameKeyword
	ReservedKeyword
)

var keywordCategories = [...]KeywordCategory{
	ABORT:             UnreservedKeyword,
	ABSOLUTE:          UnreservedKeyword,
	ACCESS:            UnreservedKeyword,
	ACTION:            UnreservedKeyword,
	ADD:               UnreservedKeyword,
	ADMIN:             UnreservedKeyword,
	AFTER:             UnreservedKeyword,
	AGGREGATE:         UnreservedKeyword,
	ALL:               ReservedKeyword,
	ALSO:              UnreservedKeyword,
	ALTER:             UnreservedKeyword,
	ALWAYS:            UnreservedKeyword,
	ANALYSE:           ReservedKeyword,
	ANALYZE:           ReservedKeyword,
	AND:               ReservedKeyword,
	ANY:               ReservedKeyword,
	ARRAY:             ReservedKeyword,
	AS:                ReservedKeyword,
	ASC:               ReservedKeyword,
	ASSERTION:         UnreservedKeyword,
	ASSIGNMENT:        UnreservedKeyword,
	ASYMMETRIC:        ReservedKeyword,
	AT:                UnreservedKeyword,
	ATTRIBUTE:         UnreservedKeyword,
	AUTHORIZATION:     TypeFuncNameKeyword,
	BACKWARD:          UnreservedKeyword,
	BEFORE:            UnreservedKeyword,
	BEGIN:             UnreservedKeyword,
	BETWEEN:           ColNameKeyword,
	BIGINT:            ColNameKeyword,
	BINARY:            TypeFuncNameKeyword,
	BIT:               ColNameKeyword,
	BOOLEAN:           ColNameKeyword,
	BOTH:              ReservedKeyword,
	BY:                UnreservedKeyword,
	CACHE:             UnreservedKeyword,
	CALLED:            UnreservedKeyword,
	CASCADE:           UnreservedKeyword,
	CASCADED:          UnreservedKeyword,
	CASE:              ReservedKeyword,
	CAST:              ReservedKeyword,
	CATALOG:           UnreservedKeyword,
	CHAIN:             UnreservedKeyword,
	CHAR:              ColNameKeyword,
	CHARACTER:         ColNameKeyword,
	CHARACTERISTICS:   UnreservedKeyword,
	CHECK:             ReservedKeyword,
	CHECKPOINT:        UnreservedKeyword,
	CLASS:             UnreservedKeyword,
	CLOSE:             UnreservedKeyword,
	CLUSTER:           UnreservedKeyword,
	COALESCE:          ColNameKeyword,
	COLLATE:           ReservedKeyword,
	COLLATION:         TypeFuncNameKeyword,
	COLUMN:            ReservedKeyword,
	COMMENT:           UnreservedKeyword,
	COMMENTS:          UnreservedKeyword,
	COMMIT:            UnreservedKeyword,
	COMMITTED:         UnreservedKeyword,
	CONCURRENTLY:      TypeFuncNameKeyword,
	CONFIGURATION:     UnreservedKeyword,
	CONNECTION:        UnreservedKeyword,
	CONSTRAINT:        ReservedKeyword,
	CONSTRAINTS:       UnreservedKeyword,
	CONTENT:           UnreservedKeyword,
	CONTINUE:          UnreservedKeyword,
	CONVERSION:        UnreservedKeyword,
	COPY:              UnreservedKeyword,
	COST:              UnreservedKeyword,
	CREATE:            ReservedKeyword,
	CROSS:             TypeFuncNameKeyword,
	CSV:               UnreservedKeyword,
	CURRENT:           UnreservedKeyword,
	CURRENT_CATALOG:   ReservedKeyword,
	CURRENT_DATE:      ReservedKeyword,
	CURRENT_ROLE:      ReservedKeyword,
	CURRENT_SCHEMA:    TypeFuncNameKeyword,
	CURRENT_TIME:      ReservedKeyword,
	CURRENT_TIMESTAMP: ReservedKeyword,
	CURRENT_USER:      ReservedKeyword,
	CURSOR:            UnreservedKeyword,
	CYCLE:             UnreservedKeyword,
	DATA:              UnreservedKeyword,
	DATABASE:          UnreservedKeyword,
	DAY:               UnreservedKeyword,
	DEALLOCATE:        UnreservedKeyword,
	DEC:               ColNameKeyword,
	DECIMAL:           ColNameKeyword,
	DECLARE:           UnreservedKeyword,
	DEFAULT:           ReservedKeyword,
	DEFAULTS:          UnreservedKeyword,
	DEFERRABLE:        ReservedKeyword,
	DEFERRED:          UnreservedKeyword,
	DEFINER:           UnreservedKeyword,
	DELETE:            UnreservedKeyword,
	DELIMITER:         UnreservedKeyword,
	DELIMITERS:        UnreservedKeyword,
	DESC:              ReservedKeyword,
	DICTIONARY:        UnreservedKeyword,
	DISABLE:           UnreservedKeyword,
	DISCARD:           UnreservedKeyword,
	DISTINCT:          ReservedKeyword,
	DO:                ReservedKeyword,
	DOCUMENT:          UnreservedKeyword,
	DOMAIN:            UnreservedKeyword,
	DOUBLE:            UnreservedKeyword,
	DROP:              UnreservedKeyword,
	EACH:              UnreservedKeyword,
	ELSE:              ReservedKeyword,
	ENABLE:            UnreservedKeyword,
	ENCODING:          UnreservedKeyword,
	ENCRYPTED:         UnreservedKeyword,
	END:               ReservedKeyword,
	ENUM:              UnreservedKeyword,
	ESCAPE:            UnreservedKeyword,
	EVENT:             UnreservedKeyword,
	EXCEPT:            ReservedKeyword,
	EXCLUDE:           UnreservedKeyword,
	EXCLUDING:         UnreservedKeyword,
	EXCLUSIVE:         UnreservedKeyword,
	EXECUTE:           UnreservedKeyword,
	EXISTS:            ColNameKeyword,
	EXPLAIN:           UnreservedKeyword,
	EXTENSION:         UnreservedKeyword,
	EXTERNAL:          UnreservedKeyword,
	EXTRACT:           ColNameKeyword,
	FALSE:             ReservedKeyword,
	FAMILY:            UnreservedKeyword,
	FETCH:             ReservedKeyword,
	FILTER:            UnreservedKeyword,
	FIRST:             UnreservedKeyword,
	FLOAT:             ColNameKeyword,
	FOLLOWING:         UnreservedKeyword,
	FOR:               ReservedKeyword,
	FORCE:             UnreservedKeyword,
	FOREIGN:           ReservedKeyword,
	FORWARD:           UnreservedKeyword,
	FREEZE:            TypeFuncNameKeyword,
	FROM:              ReservedKeyword,
	FULL:              TypeFuncNameKeyword,
	FUNCTION:          UnreservedKeyword,
	FUNCTIONS:         UnreservedKeyword,
	GLOBAL:            UnreservedKeyword,
	GRANT:             ReservedKeyword,
	GRANTED:           UnreservedKeyword,
	GREATEST:          ColNameKeyword,
	GROUP:             ReservedKeyword,
	HANDLER:           UnreservedKeyword,
	HAVING:            ReservedKeyword,
	HEADER:            UnreservedKeyword,
	HOLD:              UnreservedKeyword,
	HOUR:              UnreservedKeyword,
	IDENTITY:          UnreservedKeyword,
	IF:                UnreservedKeyword,
	ILIKE:             TypeFuncNameKeyword,
	IMMEDIATE:         UnreservedKeyword,
	IMMUTABLE:         UnreservedKeyword,
	IMPLICIT:          UnreservedKeyword,
	IN:                ReservedKeyword,
	INCLUDING:         UnreservedKeyword,
	INCREMENT:         UnreservedKeyword,
	INDEX:             UnreservedKeyword,
	INDEXES:           UnreservedKeyword,
	INHERIT:           UnreservedKeyword,
	INHERITS:          UnreservedKeyword,
	INITIALLY:         ReservedKeyword,
	INLINE:            UnreservedKeyword,
	INNER:             TypeFuncNameKeyword,
	INOUT:             ColNameKeyword,
	INPUT:             UnreservedKeyword,
	INSENSITIVE:       UnreservedKeyword,
	INSERT:            UnreservedKeyword,
	INSTEAD:           UnreservedKeyword,
	INT:               ColNameKeyword,
	INTEGER:           ColNameKeyword,
	INTERSECT:         ReservedKeyword,
	INTERVAL:          ColNameKeyword,
	INTO:              ReservedKeyword,
	INVOKER:           UnreservedKeyword,
	IS:                TypeFuncNameKeyword,
	ISNULL:            TypeFuncNameKeyword,
	ISOLATION:         UnreservedKeyword,
	JOIN:              TypeFuncNameKeyword,
	KEY:               UnreservedKeyword,
	LABEL:             UnreservedKeyword,
	LANGUAGE:          UnreservedKeyword,
	LARGE:             UnreservedKeyword,
	LAST:              UnreservedKeyword,
	LATERAL:           ReservedKeyword,
	LEADING:           ReservedKeyword,
	LEAKPROOF:         UnreservedKeyword,
	LEAST:             ColNameKeyword,
	LEFT:              TypeFuncNameKeyword,
	LEVEL:             UnreservedKeyword,
	LIKE:              TypeFuncNameKeyword,
	LIMIT:             ReservedKeyword,
	LISTEN:            UnreservedKeyword,
	LOAD:              UnreservedKeyword,
	LOCAL:             UnreservedKeyword,
	LOCALTIME:         ReservedKeyword,
	LOCALTIMESTAMP:    ReservedKeyword,
	LOCATION:          UnreservedKeyword,
	LOCK:              UnreservedKeyword,
	MAPPING:           UnreservedKeyword,
	MATCH:             UnreservedKeyword,
	MATERIALIZED:      UnreservedKeyword,
	MAXVALUE:          UnreservedKeyword,
	MINUTE:            UnreservedKeyword,
	MINVALUE:          UnreservedKeyword,
	MODE:              UnreservedKeyword,
	MONTH:             UnreservedKeyword,
	MOVE:              UnreservedKeyword,
	NAME:              UnreservedKeyword,
	NAMES:             UnreservedKeyword,
	NATIONAL:          ColNameKeyword,
	NATURAL:           TypeFuncNameKeyword,
	NCHAR:             ColNameKeyword,
	NEXT:              UnreservedKeyword,
	NO:                UnreservedKeyword,
	NONE:              ColNameKeyword,
	NOT:               ReservedKeyword,
	NOTHING:           UnreservedKeyword,
	NOTIFY:            UnreservedKeyword,
	NOTNULL:           TypeFuncNameKeyword,
	NOWAIT:            UnreservedKeyword,
	NULL:              ReservedKeyword,
	NULLIF:            ColNameKeyword,
	NULLS:             UnreservedKeyword,
	NUMERIC:           ColNameKeyword,
	OBJECT:            UnreservedKeyword,
	OF:                UnreservedKeyword,
	OFF:               UnreservedKeyword,
	OFFSET:            ReservedKeyword,
	OIDS:              UnreservedKeyword,
	ON:                ReservedKeyword,
	ONLY:              ReservedKeyword,
	OPERATOR:          UnreservedKeyword,
	OPTION:            UnreservedKeyword,
	OPTIONS:           UnreservedKeyword,
	OR:                ReservedKeyword,
	ORDER:             ReservedKeyword,
	ORDINALITY:        UnreservedKeyword,
	OUT:               ColNameKeyword,
	OUTER:             TypeFuncNameKeyword,
	OVER:              TypeFuncNameKeyword,
	OVERLAPS:          TypeFuncNameKeyword,
	OVERLAY:           ColNameKeyword,
	OWNED:             UnreservedKeyword,
	OWNER:             UnreservedKeyword,
	PARSER:            UnreservedKeyword,
	PARTIAL:           UnreservedKeyword,
	PARTITION:         UnreservedKeyword,
	PASSING:           UnreservedKeyword,
	PASSWORD:          UnreservedKeyword,
	PLACING:           ReservedKeyword,
	PLANS:             UnreservedKeyword,
	POSITION:          ColNameKeyword,
	PRECEDING:         UnreservedKeyword,
	PRECISION:         ColNameKeyword,
	PREPARE:           UnreservedKeyword,
	PREPARED:          UnreservedKeyword,
	PRESERVE:          UnreservedKeyword,
	PRIMARY:           ReservedKeyword,
	PRIOR:             UnreservedKeyword,
	PRIVILEGES:        UnreservedKeyword,
	PROCEDURAL:        UnreservedKeyword,
	PROCEDURE:         UnreservedKeyword,
	PROGRAM:           UnreservedKeyword,
	QUOTE:             UnreservedKeyword,
	RANGE:             UnreservedKeyword,
	READ:              UnreservedKeyword,
	REAL:              ColNameKeyword,
	REASSIGN:          UnreservedKeyword,
	RECHECK:           UnreservedKeyword,
	RECURSIVE:         UnreservedKeyword,
	REF:               UnreservedKeyword,
	REFERENCES:        ReservedKeyword,
	REFRESH:           UnreservedKeyword,
	REINDEX:           UnreservedKeyword,
	RELATIVE:          UnreservedKeyword,
	RELEASE:           UnreservedKeyword,
	RENAME:            UnreservedKeyword,
	REPEATABLE:        UnreservedKeyword,
	REPLACE:           UnreservedKeyword,
	REPLICA:           UnreservedKeyword,
	RESET:             UnreservedKeyword,
	RESTART:           UnreservedKeyword,
	RESTRICT:          UnreservedKeyword,
	RETURNING:         ReservedKeyword,
	RETURNS:           UnreservedKeyword,
	REVOKE:            UnreservedKeyword,
	RIGHT:             TypeFuncNameKeyword,
	ROLE:              UnreservedKeyword,
	ROLLBACK:          UnreservedKeyword,
	ROW:               ColNameKeyword,
	ROWS:              UnreservedKeyword,
	RULE:              UnreservedKeyword,
	SAVEPOINT:         UnreservedKeyword,
	SCHEMA:            UnreservedKeyword,
	SCROLL:            UnreservedKeyword,
	SEARCH:            UnreservedKeyword,
	SECOND:            UnreservedKeyword,
	SECURITY:          UnreservedKeyword,
	SELECT:            ReservedKeyword,
	SEQUENCE:          UnreservedKeyword,
	SEQUENCES:         UnreservedKeyword,
	SERIALIZABLE:      UnreservedKeyword,
	SERVER:            UnreservedKeyword,
	SESSION:           UnreservedKeyword,
	SESSION_USER:      ReservedKeyword,
	SET:               UnreservedKeyword,
	SETOF:             ColNameKeyword,
	SHARE:             UnreservedKeyword,
	SHOW:              UnreservedKeyword,
	SIMILAR:           TypeFuncNameKeyword,
	SIMPLE:            UnreservedKeyword,
	SMALLINT:          ColNameKeyword,
	SNAPSHOT:          UnreservedKeyword,
	SOME:              ReservedKeyword,
	STABLE:            UnreservedKeyword,
	STANDALONE:        UnreservedKeyword,
	START:             UnreservedKeyword,
	STATEMENT:         UnreservedKeyword,
	STATISTICS:        UnreservedKeyword,
	STDIN:             UnreservedKeyword,
	STDOUT:            UnreservedKeyword,
	STORAGE:           UnreservedKeyword,
	STRICT:            UnreservedKeyword,
	STRIP:             UnreservedKeyword,
	SUBSTRING:         ColNameKeyword,
	SYMMETRIC:         ReservedKeyword,
	SYSID:             UnreservedKeyword,
	SYSTEM:            UnreservedKeyword,
	TABLE:             ReservedKeyword,
	TABLES:            UnreservedKeyword,
	TABLESPACE:        UnreservedKeyword,
	TEMP:              UnreservedKeyword,
	TEMPLATE:          UnreservedKeyword,
	TEMPORARY:         UnreservedKeyword,
	TEXT:              UnreservedKeyword,
	THEN:              ReservedKeyword,
	TIME:              ColNameKeyword,
	TIMESTAMP:         ColNameKeyword,
	TO:                ReservedKeyword,
	TRAILING:          ReservedKeyword,
	TRANSACTION:       UnreservedKeyword,
	TREAT:             ColNameKeyword,
	TRIGGER:           UnreservedKeyword,
	TRIM:              ColNameKeyword,
	TRUE:              ReservedKeyword,
	TRUNCATE:          UnreservedKeyword,
	TRUSTED:           UnreservedKeyword,
	TYPE:              UnreservedKeyword,
	TYPES:             UnreservedKeyword,
	UNBOUNDED:         UnreservedKeyword,
	UNCOMMITTED:       UnreservedKeyword,
	UNENCRYPTED:       UnreservedKeyword,
	UNION:             ReservedKeyword,
	UNIQUE:            ReservedKeyword,
	UNKNOWN:           UnreservedKeyword,
	UNLISTEN:          UnreservedKeyword,
	UNLOGGED:          UnreservedKeyword,
	UNTIL:             UnreservedKeyword,
	UPDATE:            UnreservedKeyword,
	USER:              ReservedKeyword,
	USING:             ReservedKeyword,
	VACUUM:            UnreservedKeyword,
	VALID:             UnreservedKeyword,
	VALIDATE:          UnreservedKeyword,
	VALIDATOR:         UnreservedKeyword,
	VALUE:             UnreservedKeyword,
	VALUES:            ColNameKeyword,
	VARCHAR:           ColNameKeyword,
	VARIADIC:          ReservedKeyword,
	VARYING:           UnreservedKeyword,
	VERBOSE:           TypeFuncNameKeyword,
	VERSION:           UnreservedKeyword,
	VIEW:              UnreservedKeyword,
	VIEWS:             UnreservedKeyword,
	VOLATILE:          UnreservedKeyword,
	WHEN:              ReservedKeyword,
	WHERE:             ReservedKeyword,
	WHITESPACE:        UnreservedKeyword,
	WINDOW:            ReservedKeyword,
	WITH:              ReservedKeyword,
	WITHIN:            UnreservedKeyword,
	WITHOUT:           UnreservedKeyword,
	WORK:              UnreservedKeyword,
	WRAPPER:           UnreservedKeyword,
	WRITE:             UnreservedKeyword,
	YEAR:              UnreservedKeyword,
	YES:               UnreservedKeyword,
	ZONE:              UnreservedKeyword,
}

func (tok Token) String() string {
	s := ""
	if 0 <= tok && tok < Token(len(tokens)) {
		s = tokens[tok]
	}
	if s == "" {
		s = "token(" + strconv.Itoa(int(tok)) + ")"
	}
	return s
}

// Lookup returns the keyword token for ident, or IDENT.
func Lookup(ident string) Token {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return IDENT
}

// IsLiteral returns true for identifiers, constants and parameters.
func (tok Token) IsLiteral() bool { return tok > literal_beg && tok < literal_end }

// IsOperator returns true for operator tokens.
func (tok Token) IsOperator() bool { return tok > operator_beg && tok < operator_end }

// IsKeyword returns true for keyword tokens.
func (tok Token) IsKeyword() bool { return tok > keyword_beg && tok < keyword_end }

// Category returns the keyword category of tok, NotKeyword for non-keywords.
func (tok Token) Category() KeywordCategory {
	if !tok.IsKeyword() {
		return NotKeyword
	}
	return keywordCategories[tok]
}

// isColId returns true if tok can be used as a column or table name.
func isColId(tok Token) bool {
	switch tok.Category() {
	case NotKeyword:
		return tok == IDENT
	case UnreservedKeyword, ColNameKeyword:
		return true
	}
	return false
}

// isTypeFunctionName returns true if tok can name a type or function.
func isTypeFunctionName(tok Token) bool {
	switch tok.Category() {
	case NotKeyword:
		return tok == IDENT
	case UnreservedKeyword, TypeFuncNameKeyword:
		return true
	}
	return false
}

// isColLabel returns true if tok can be used as a column label after AS.
func isColLabel(tok Token) bool {
	return tok == IDENT || tok.IsKeyword()
}

const (
	LowestPrec = 0
	UnaryPrec  = 14
)

// Precedence returns the binding strength of op when used as a binary or
// postfix operator. Tokens that are not operators return LowestPrec.
func (op Token) Precedence() int {
	switch op {
	case OR:
		return 1
	case AND:
		return 2
	case NOT:
		return 3
	case IS, ISNULL, NOTNULL:
		return 4
	case LT, GT, EQ, LE, GE, NE:
		return 5
	case BETWEEN, IN, LIKE, ILIKE, SIMILAR:
		return 6
	case ESCAPE:
		return 7
	case OP:
		return 8
	case PLUS, MINUS:
		return 9
	case STAR, SLASH, PERCENT:
		return 10
	case CARET:
		return 11
	case AT:
		return 12
	case COLLATE:
		return 13
	case TYPECAST:
		return 16
	}
	return LowestPrec
}

type Pos struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number, starting at 1 (character count)
}

// String returns a string representation of the position.
func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	s := fmt.Sprintf("%d", p.Line)
	if p.Column != 0 {
		s += fmt.Sprintf(":%d", p.Column)
	}
	return s
}

// IsValid returns true if p is non-zero.
func (p Pos) IsValid() bool {
	return p != Pos{}
}

func assert(condition bool) {
	if !condition {
		panic("assert failed")
	}
}
