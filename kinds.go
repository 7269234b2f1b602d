package pgquery

// NodeKind tags a node. The names match the pg_query JSON output.
type NodeKind string

// Statement kinds.
const (
	SelectStmt         NodeKind = "SELECT"
	InsertStmt         NodeKind = "INSERT INTO"
	UpdateStmt         NodeKind = "UPDATE"
	DeleteStmt         NodeKind = "DELETE FROM"
	CopyStmt           NodeKind = "COPY"
	TransactionStmt    NodeKind = "TRANSACTION"
	CreateStmt         NodeKind = "CREATESTMT"
	CreateTableAsStmt  NodeKind = "CREATE TABLE AS"
	IndexStmt          NodeKind = "INDEXSTMT"
	CreateSchemaStmt   NodeKind = "CREATE SCHEMA"
	ViewStmt           NodeKind = "VIEWSTMT"
	CreateTrigStmt     NodeKind = "CREATETRIGSTMT"
	RuleStmt           NodeKind = "RULESTMT"
	CreateFunctionStmt NodeKind = "CREATEFUNCTIONSTMT"
	AlterTableStmt     NodeKind = "ALTER TABLE"
	AlterTableCmd      NodeKind = "ALTER TABLE CMD"
	RenameStmt         NodeKind = "RENAMESTMT"
	AlterOwnerStmt     NodeKind = "ALTEROWNERSTMT"
	DropStmt           NodeKind = "DROP"
	GrantStmt          NodeKind = "GRANTSTMT"
	GrantRoleStmt      NodeKind = "GRANTROLESTMT"
	TruncateStmt       NodeKind = "TRUNCATE"
	VacuumStmt         NodeKind = "VACUUM"
	CheckPointStmt     NodeKind = "CHECKPOINT"
	VariableSetStmt    NodeKind = "SET"
	VariableShowStmt   NodeKind = "SHOW"
	LockStmt           NodeKind = "LOCK"
	ExplainStmt        NodeKind = "EXPLAIN"
	RefreshMatViewStmt NodeKind = "REFRESHMATVIEWSTMT"
)

// Clause and expression kinds.
const (
	RangeVar          NodeKind = "RANGEVAR"
	Alias             NodeKind = "ALIAS"
	ResTarget         NodeKind = "RESTARGET"
	ColumnRef         NodeKind = "COLUMNREF"
	AStar             NodeKind = "A_STAR"
	AConst            NodeKind = "A_CONST"
	AExpr             NodeKind = "AEXPR"
	ParamRef          NodeKind = "PARAMREF"
	FuncCall          NodeKind = "FUNCCALL"
	TypeCast          NodeKind = "TYPECAST"
	TypeName          NodeKind = "TYPENAME"
	CollateClause     NodeKind = "COLLATECLAUSE"
	ColumnDef         NodeKind = "COLUMNDEF"
	Constraint        NodeKind = "CONSTRAINT"
	DefElem           NodeKind = "DEFELEM"
	IndexElem         NodeKind = "INDEXELEM"
	IntoClause        NodeKind = "INTOCLAUSE"
	WithClause        NodeKind = "WITHCLAUSE"
	CommonTableExpr   NodeKind = "COMMONTABLEEXPR"
	JoinExpr          NodeKind = "JOINEXPR"
	RangeSubselect    NodeKind = "RANGESUBSELECT"
	RangeFunction     NodeKind = "RANGEFUNCTION"
	SortBy            NodeKind = "SORTBY"
	SubLink           NodeKind = "SUBLINK"
	NullTest          NodeKind = "NULLTEST"
	BooleanTest       NodeKind = "BOOLEANTEST"
	CaseExpr          NodeKind = "CASE"
	CaseWhen          NodeKind = "WHEN"
	CoalesceExpr      NodeKind = "COALESCE"
	MinMaxExpr        NodeKind = "MINMAX"
	RowExpr           NodeKind = "ROW"
	AArrayExpr        NodeKind = "A_ARRAYEXPR"
	AIndirection      NodeKind = "A_INDIRECTION"
	AIndices          NodeKind = "A_INDICES"
	WindowDef         NodeKind = "WINDOWDEF"
	LockingClause     NodeKind = "LOCKINGCLAUSE"
	SetToDefault      NodeKind = "SETTODEFAULT"
	AccessPriv        NodeKind = "ACCESSPRIV"
	PrivGrantee       NodeKind = "PRIVGRANTEE"
	FunctionParameter NodeKind = "FUNCTIONPARAMETER"
	FuncWithArgs      NodeKind = "FUNCWITHARGS"
	NamedArgExpr      NodeKind = "NAMEDARGEXPR"
	TableLikeClause   NodeKind = "TABLELIKECLAUSE"
)

// Field names shared by several kinds.
const (
	LocationField    = "location"
	TargetListField  = "targetList"
	FromClauseField  = "fromClause"
	WhereClauseField = "whereClause"
	RelationField    = "relation"
	RelationsField   = "relations"
	WithClauseField  = "withClause"
	ObjectsField     = "objects"
	RemoveTypeField  = "removeType"
	RelnameField     = "relname"
	SchemanameField  = "schemaname"
	CatalognameField = "catalogname"
	ValuesListsField = "valuesLists"
	SortClauseField  = "sortClause"
	ReturningField   = "returningList"
	SubselectField   = "subquery"
	QueryField       = "query"
	LeftArgField     = "larg"
	RightArgField    = "rarg"
)

// ObjectType identifies the kind of object a DDL statement acts on.
type ObjectType int

const (
	ObjectAggregate ObjectType = iota
	ObjectAttribute
	ObjectCast
	ObjectColumn
	ObjectConstraint
	ObjectCollation
	ObjectConversion
	ObjectDatabase
	ObjectDomain
	ObjectEventTrigger
	ObjectExtension
	ObjectFDW
	ObjectForeignServer
	ObjectForeignTable
	ObjectFunction
	ObjectIndex
	ObjectLanguage
	ObjectLargeObject
	ObjectMatView
	ObjectOpClass
	ObjectOperator
	ObjectOpFamily
	ObjectRole
	ObjectRule
	ObjectSchema
	ObjectSequence
	ObjectTable
	ObjectTablespace
	ObjectTrigger
	ObjectTSConfiguration
	ObjectTSDictionary
	ObjectTSParser
	ObjectTSTemplate
	ObjectUserType
	ObjectView
)

// Inheritance options of a RANGEVAR.
const (
	InhNo      = 0
	InhYes     = 1
	InhDefault = 2
)

// Relation persistence codes.
const (
	RelPersistencePermanent = "p"
	RelPersistenceUnlogged  = "u"
	RelPersistenceTemp      = "t"
)

// Set operations of a SELECT.
const (
	SetOpNone = iota
	SetOpUnion
	SetOpIntersect
	SetOpExcept
)

// Drop behaviors.
const (
	DropRestrict = iota
	DropCascade
)

// AlterTableType is the subtype of an ALTER TABLE CMD.
type AlterTableType int

const (
	ATAddColumn          AlterTableType = 0
	ATColumnDefault      AlterTableType = 3
	ATDropNotNull        AlterTableType = 4
	ATSetNotNull         AlterTableType = 5
	ATSetStatistics      AlterTableType = 6
	ATSetStorage         AlterTableType = 9
	ATDropColumn         AlterTableType = 10
	ATAddConstraint      AlterTableType = 14
	ATValidateConstraint AlterTableType = 18
	ATDropConstraint     AlterTableType = 22
	ATAlterColumnType    AlterTableType = 24
	ATChangeOwner        AlterTableType = 26
	ATClusterOn          AlterTableType = 27
	ATDropCluster        AlterTableType = 28
	ATAddOids            AlterTableType = 29
	ATDropOids           AlterTableType = 31
	ATSetTableSpace      AlterTableType = 32
	ATSetRelOptions      AlterTableType = 33
	ATResetRelOptions    AlterTableType = 34
)

// ConstrType is the contype of a CONSTRAINT.
type ConstrType int

const (
	ConstrNull ConstrType = iota
	ConstrNotNull
	ConstrDefault
	ConstrCheck
	ConstrPrimary
	ConstrUnique
	ConstrExclusion
	ConstrForeign
	ConstrAttrDeferrable
	ConstrAttrNotDeferrable
	ConstrAttrDeferred
	ConstrAttrImmediate
)

// Foreign key match types and actions.
const (
	FKMatchFull    = "f"
	FKMatchPartial = "p"
	FKMatchSimple  = "s"

	FKActionNoAction   = "a"
	FKActionRestrict   = "r"
	FKActionCascade    = "c"
	FKActionSetNull    = "n"
	FKActionSetDefault = "d"
)

// VariableSetKind is the kind of a SET statement.
type VariableSetKind int

const (
	VarSetValue VariableSetKind = iota
	VarSetDefault
	VarSetCurrent
	VarSetMulti
	VarReset
	VarResetAll
)

// TransactionStmtKind is the kind of a TRANSACTION statement.
type TransactionStmtKind int

const (
	TransBegin TransactionStmtKind = iota
	TransStart
	TransCommit
	TransRollback
	TransSavepoint
	TransRelease
	TransRollbackTo
	TransPrepare
	TransCommitPrepared
	TransRollbackPrepared
)

// Vacuum option flags.
const (
	VacOptVacuum  = 1 << 0
	VacOptAnalyze = 1 << 1
	VacOptVerbose = 1 << 2
	VacOptFreeze  = 1 << 3
	VacOptFull    = 1 << 4
	VacOptNoWait  = 1 << 5
)

// LockMode is the lock level of a LOCK statement.
type LockMode int

const (
	AccessShareLock LockMode = iota + 1
	RowShareLock
	RowExclusiveLock
	ShareUpdateExclusiveLock
	ShareLock
	ShareRowExclusiveLock
	ExclusiveLock
	AccessExclusiveLock
)

// OnCommit actions of temporary tables.
const (
	OnCommitNoop = iota
	OnCommitPreserveRows
	OnCommitDeleteRows
	OnCommitDrop
)

// Sort directions and null orderings.
const (
	SortByDefault = iota
	SortByAsc
	SortByDesc
	SortByUsing

	SortByNullsDefault = 0
	SortByNullsFirst   = 1
	SortByNullsLast    = 2
)

// View check options.
const (
	NoCheckOption = iota
	LocalCheckOption
	CascadedCheckOption
)

// CmdType is the event of a rule.
type CmdType int

const (
	CmdUnknown CmdType = iota
	CmdSelect
	CmdUpdate
	CmdInsert
	CmdDelete
)

// Trigger type bits.
const (
	TriggerTypeRow      = 1 << 0
	TriggerTypeBefore   = 1 << 1
	TriggerTypeInsert   = 1 << 2
	TriggerTypeDelete   = 1 << 3
	TriggerTypeUpdate   = 1 << 4
	TriggerTypeTruncate = 1 << 5
	TriggerTypeInstead  = 1 << 6
)

// Grant target types.
const (
	AclTargetObject = iota
	AclTargetAllInSchema
	AclTargetDefaults
)

// GrantObjectType is the objtype of a GRANTSTMT.
type GrantObjectType int

const (
	AclObjectColumn GrantObjectType = iota
	AclObjectRelation
	AclObjectSequence
	AclObjectDatabase
	AclObjectDomain
	AclObjectFDW
	AclObjectForeignServer
	AclObjectFunction
	AclObjectLanguage
	AclObjectLargeObject
	AclObjectNamespace
	AclObjectTablespace
	AclObjectType
)

// Function parameter modes.
const (
	FuncParamIn       = 'i'
	FuncParamOut      = 'o'
	FuncParamInOut    = 'b'
	FuncParamVariadic = 'v'
	FuncParamTable    = 't'
)

// AExprKind is the kind of an AEXPR.
type AExprKind int

const (
	AExprOp AExprKind = iota
	AExprAnd
	AExprOr
	AExprNot
	AExprOpAny
	AExprOpAll
	AExprDistinct
	AExprNullIf
	AExprOf
	AExprIn
)

// SubLinkType is the type of a SUBLINK.
type SubLinkType int

const (
	ExistsSubLink SubLinkType = iota
	AllSubLink
	AnySubLink
	RowCompareSubLink
	ExprSubLink
	MultiExprSubLink
	ArraySubLink
	CTESubLink
)

// Join types.
const (
	JoinInner = iota
	JoinLeft
	JoinFull
	JoinRight
)

// Null test types.
const (
	IsNull = iota
	IsNotNull
)

// Boolean test types.
const (
	IsTrue = iota
	IsNotTrue
	IsFalse
	IsNotFalse
	IsUnknown
	IsNotUnknown
)

// MINMAX operations.
const (
	IsGreatest = 0
	IsLeast    = 1
)

// Row-locking strengths.
const (
	LCSForKeyShare = iota
	LCSForShare
	LCSForNoKeyUpdate
	LCSForUpdate
)

// Window frame option bits.
const (
	FrameOptionNonDefault              = 0x00001
	FrameOptionRange                   = 0x00002
	FrameOptionRows                    = 0x00004
	FrameOptionBetween                 = 0x00008
	FrameOptionStartUnboundedPreceding = 0x00010
	FrameOptionEndUnboundedPreceding   = 0x00020
	FrameOptionStartUnboundedFollowing = 0x00040
	FrameOptionEndUnboundedFollowing   = 0x00080
	FrameOptionStartCurrentRow         = 0x00100
	FrameOptionEndCurrentRow           = 0x00200
	FrameOptionStartValuePreceding     = 0x00400
	FrameOptionEndValuePreceding       = 0x00800
	FrameOptionStartValueFollowing     = 0x01000
	FrameOptionEndValueFollowing       = 0x02000
	FrameOptionDefaults                = FrameOptionRange | FrameOptionStartUnboundedPreceding | FrameOptionEndCurrentRow
)
