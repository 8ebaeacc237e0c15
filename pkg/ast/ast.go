package ast

import (
	"encoding/json"
	"math"
)

type NodeType string

const (
	NodeVarDecl        NodeType = "VarDecl"
	NodeExpressionStmt NodeType = "ExpressionStmt"
	NodePrintStmt      NodeType = "PrintStmt"
	NodeCallStmt       NodeType = "CallStmt"
	NodeBlock          NodeType = "Block"
	NodeRepeatBlock    NodeType = "RepeatBlock"

	NodeLiteral  NodeType = "Literal"
	NodeVariable NodeType = "Variable"
	NodeAssign   NodeType = "Assign"
	NodeUnary    NodeType = "Unary"
	NodeBinary   NodeType = "Binary"
	NodeGrouping NodeType = "Grouping"
	NodeCall     NodeType = "Call"
)

type Node interface {
	NodeType() NodeType
	// Line is the source line the node starts on (0 when built by hand).
	Line() int
	isNode()
}

type nodeImpl struct {
	Type    NodeType `json:"type"`
	SrcLine int      `json:"line,omitempty"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Line() int          { return n.SrcLine }
func (nodeImpl) isNode()              {}

func (n *nodeImpl) setLine(line int) { n.SrcLine = line }

// Marker interfaces. Statement and Expression are disjoint; an expression is
// wrapped in ExpressionStmt to appear in statement position.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// WithLine records the source line on a node built by the parser.
func WithLine[T Node](node T, line int) T {
	if n, ok := any(node).(interface{ setLine(int) }); ok {
		n.setLine(line)
	}
	return node
}

// Statements

type VarDecl struct {
	nodeImpl
	statementMarker

	Name        string     `json:"name"`
	Initializer Expression `json:"initializer,omitempty"`
}

func NewVarDecl(name string, initializer Expression) *VarDecl {
	return &VarDecl{nodeImpl: newNodeImpl(NodeVarDecl), Name: name, Initializer: initializer}
}

type ExpressionStmt struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expression"`
}

func NewExpressionStmt(expr Expression) *ExpressionStmt {
	return &ExpressionStmt{nodeImpl: newNodeImpl(NodeExpressionStmt), Expr: expr}
}

type PrintStmt struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expression"`
}

func NewPrintStmt(expr Expression) *PrintStmt {
	return &PrintStmt{nodeImpl: newNodeImpl(NodePrintStmt), Expr: expr}
}

// CallStmt invokes a turtle verb.
type CallStmt struct {
	nodeImpl
	statementMarker

	Verb string       `json:"verb"`
	Args []Expression `json:"args"`
}

func NewCallStmt(verb string, args []Expression) *CallStmt {
	return &CallStmt{nodeImpl: newNodeImpl(NodeCallStmt), Verb: verb, Args: args}
}

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

// RepeatBlock holds one argument (end) or two (start, end).
type RepeatBlock struct {
	nodeImpl
	statementMarker

	Args []Expression `json:"args"`
	Body []Statement  `json:"body"`
}

func NewRepeatBlock(args []Expression, body []Statement) *RepeatBlock {
	return &RepeatBlock{nodeImpl: newNodeImpl(NodeRepeatBlock), Args: args, Body: body}
}

// Expressions

// Literal holds a float64, string, or bool.
type Literal struct {
	nodeImpl
	expressionMarker

	Value any `json:"value"`
}

func NewLiteral(value any) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

// MarshalJSON writes non-finite numbers, which JSON cannot hold, as the
// strings "Infinity", "-Infinity" and "NaN".
func (l Literal) MarshalJSON() ([]byte, error) {
	value := l.Value
	if f, ok := value.(float64); ok {
		switch {
		case math.IsNaN(f):
			value = "NaN"
		case math.IsInf(f, 1):
			value = "Infinity"
		case math.IsInf(f, -1):
			value = "-Infinity"
		}
	}
	return json.Marshal(struct {
		Type  NodeType `json:"type"`
		Line  int      `json:"line,omitempty"`
		Value any      `json:"value"`
	}{l.Type, l.SrcLine, value})
}

type Variable struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

type Assign struct {
	nodeImpl
	expressionMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewAssign(name string, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

type Unary struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnary(operator string, operand Expression) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Operand: operand}
}

type Binary struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinary(operator string, left, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Operator: operator, Left: left, Right: right}
}

type Grouping struct {
	nodeImpl
	expressionMarker

	Inner Expression `json:"inner"`
}

func NewGrouping(inner Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Inner: inner}
}

// Call invokes a builtin function by name.
type Call struct {
	nodeImpl
	expressionMarker

	Name string       `json:"name"`
	Args []Expression `json:"args"`
}

func NewCall(name string, args []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Name: name, Args: args}
}
