// Package decode implements the stack-machine decoder: it walks a parsed
// DSO file's patched byte code and emits a TorqueScript AST tree,
// reconstructing control flow, expressions, and statements from the flat
// opcode trace (spec.md §4).
package decode

import (
	"github.com/misiektw/dso2cs/ast"
	"github.com/misiektw/dso2cs/dso"
)

// condBuilder accumulates the operand chain for a short-circuit &&/||
// expression being assembled across consecutive JMPIFNOT_NP/JMPIF_NP
// opcodes (spec.md §4.4.4), left-folded into nested And/Or nodes once the
// owning JMPIF(NOT) consumes the final operand.
type condBuilder struct {
	isAnd bool
	conds []ast.Expr
}

func (b *condBuilder) fold() ast.Expr {
	if len(b.conds) == 0 {
		return nil
	}
	result := b.conds[0]
	for _, c := range b.conds[1:] {
		if b.isAnd {
			result = &ast.And{L: result, R: c}
		} else {
			result = &ast.Or{L: result, R: c}
		}
	}
	return result
}

// Decoder is the stack-machine interpreter for one code stream. New builds
// one Decoder per parsed file; Run walks that file's whole stream, function
// bodies included, tracking function nesting in inFunction. offset stays 0.
type Decoder struct {
	file *dso.File
	bc   *dso.ByteCode

	inFunction int
	inObject   int
	offset     int

	curVar   ast.Expr
	curObj   ast.Expr
	curField ast.Expr

	argFrame      ArgFrame
	argFrameStack []ArgFrame

	intStack IntStack
	fltStack FltStack
	strStack StringStack
	binStack []*condBuilder

	tree      *ast.Tree
	treeStack []*ast.Tree

	// endBlock records, for a byte offset, the block-opening nodes whose
	// body ends there (spec.md's "end_of_block" map).
	endBlock map[int][]*ast.Node

	// prevOp/prevPrevOp are the two opcodes dispatched before the one
	// currently running, the way the source's callStack[-1]/[-2] let a
	// handler see what ran just before it (e.g. opEndObject's no-body
	// check).
	prevOp, prevPrevOp Opcode

	ip int
}

// New builds a Decoder over f's patched byte code, producing a tree
// rooted at a File node named name.
func New(f *dso.File, name string) *Decoder {
	return &Decoder{
		file:     f,
		bc:       f.ByteCode,
		tree:     ast.NewTree(ast.NewNode(&ast.File{Name: name})),
		endBlock: make(map[int][]*ast.Node),
	}
}

// Tree returns the root of the decoded statement tree.
func (d *Decoder) Tree() *ast.Tree { return d.tree }

// Run decodes the whole byte code stream into the tree, stopping at the
// end-of-stream sentinel or an unrecoverable error.
func (d *Decoder) Run() error {
	d.bc.ResetCursor()
	for {
		d.ip = d.bc.Cursor()
		code, err := d.bc.GetCode()
		if err != nil {
			return err
		}
		if code == dso.EndSentinel {
			return nil
		}
		op := Opcode(code)
		if uint32(op) >= uint32(opcodeCount) {
			return &UnknownOpcodeError{IP: d.ip, Value: code}
		}
		logger.Printf("ip=%d op=%s intStack=%d fltStack=%d strStack=%d argFrame=%d",
			d.ip, op, d.intStack.Len(), d.fltStack.Len(), len(d.strStack.items), len(d.argFrame.items))
		if err := d.dispatch(op); err != nil {
			return err
		}
		d.prevPrevOp, d.prevOp = d.prevOp, op
		d.closeBlocksEndingAt(d.bc.Cursor())
	}
}

func (d *Decoder) closeBlocksEndingAt(offset int) {
	nodes, ok := d.endBlock[offset]
	if !ok {
		return
	}
	delete(d.endBlock, offset)
	for range nodes {
		d.tree.FocusParent()
	}
}

func (d *Decoder) recordEndOfBlock(target int, n *ast.Node) {
	d.endBlock[target] = append(d.endBlock[target], n)
}

func (d *Decoder) byteIndexOf(codeIndex uint32) (int, error) {
	return d.bc.ByteOffsetOf(int(codeIndex))
}

// currentStringTable picks the global or function string table by
// context, the way the source's getStringByOffset does.
func (d *Decoder) currentStringTable() *dso.StringTable {
	if d.inFunction > 0 {
		return d.file.FunctionStringTable
	}
	return d.file.GlobalStringTable
}

func (d *Decoder) currentFloatTable() *dso.FloatTable {
	if d.inFunction > 0 {
		return d.file.FunctionFloatTable
	}
	return d.file.GlobalFloatTable
}

func (d *Decoder) getString() (string, error) {
	offset, err := d.bc.GetStringOffset()
	if err != nil {
		return "", err
	}
	return d.currentStringTable().Get(int(offset))
}

func (d *Decoder) getGlobalString() (string, error) {
	offset, err := d.bc.GetStringOffset()
	if err != nil {
		return "", err
	}
	return d.file.GlobalStringTable.Get(int(offset))
}

func (d *Decoder) getFloat() (float64, error) {
	offset, err := d.bc.GetFloatOffset()
	if err != nil {
		return 0, err
	}
	return d.currentFloatTable().Get(int(offset))
}

func (d *Decoder) dispatch(op Opcode) error {
	switch op {
	case OpFuncDecl:
		return d.opFuncDecl()
	case OpCreateObject:
		return d.opCreateObject()
	case OpAddObject:
		return d.opAddObject()
	case OpEndObject:
		return d.opEndObject()
	case OpJmpIfNot, OpJmpIfFNot:
		return d.opJmpIfNot(op == OpJmpIfFNot)
	case OpJmpIf, OpJmpIfF:
		return d.opJmpIf(op == OpJmpIfF)
	case OpJmp:
		return d.opJmp()
	case OpJmpIfNotNP:
		return d.opJmpIfNotNP()
	case OpJmpIfNP:
		return d.opJmpIfNP()
	case OpReturn:
		return d.opReturn()
	case OpCmpEq, OpCmpLt, OpCmpLe, OpCmpGr, OpCmpGe, OpCmpNe:
		return d.opCompare(op)
	case OpXor, OpMod, OpBitAnd, OpBitOr, OpShr, OpShl, OpAnd, OpOr, OpAdd, OpSub, OpMul, OpDiv:
		return d.opArith(op)
	case OpNot:
		return d.opNot()
	case OpNotF:
		return d.opNotF()
	case OpOnesComplement:
		return d.opComplement()
	case OpNeg:
		return d.opNeg()
	case OpSetCurVar, OpSetCurVarCreate:
		return d.opSetCurVar()
	case OpSetCurVarArray, OpSetCurVarArrayCreate:
		return d.opSetCurVarArray()
	case OpLoadVarUint:
		return d.opLoadVar(loadUint)
	case OpLoadVarFlt:
		return d.opLoadVar(loadFlt)
	case OpLoadVarStr:
		return d.opLoadVar(loadStr)
	case OpSaveVarUint:
		return d.opSaveVar(loadUint)
	case OpSaveVarFlt:
		return d.opSaveVar(loadFlt)
	case OpSaveVarStr:
		return d.opSaveVar(loadStr)
	case OpSetCurObject, OpSetCurObjectNew:
		return d.opSetCurObject()
	case OpSetCurField:
		return d.opSetCurField()
	case OpSetCurFieldArray:
		return d.opSetCurFieldArray()
	case OpLoadFieldUint:
		return d.opLoadField(loadUint)
	case OpLoadFieldFlt:
		return d.opLoadField(loadFlt)
	case OpLoadFieldStr:
		return d.opLoadField(loadStr)
	case OpSaveFieldUint:
		return d.opSaveField(loadUint)
	case OpSaveFieldFlt:
		return d.opSaveField(loadFlt)
	case OpSaveFieldStr:
		return d.opSaveField(loadStr)
	case OpStrToUint:
		return d.opStrToUint()
	case OpStrToFlt:
		return d.opStrToFlt()
	case OpStrToNone:
		return d.opStrToNone()
	case OpFltToUint:
		return d.opFltToUint()
	case OpFltToStr:
		return d.opFltToStr()
	case OpFltToNone:
		return d.opFltToNone()
	case OpUintToFlt:
		return d.opUintToFlt()
	case OpUintToStr:
		return d.opUintToStr()
	case OpUintToNone:
		return d.opUintToNone()
	case OpLoadImmedUint:
		return d.opLoadImmedUint()
	case OpLoadImmedFlt:
		return d.opLoadImmedFlt()
	case OpLoadImmedStr:
		return d.opLoadImmedStr()
	case OpDocBlockStr:
		return nil // TODO: docblocks are consumed but not surfaced anywhere yet.
	case OpLoadImmedIdent:
		return d.opLoadImmedIdent()
	case OpTagToStr:
		return d.opTagToStr()
	case OpCallFunc, OpCallFuncResolve:
		return d.opCallFunc()
	case OpAdvanceStr:
		d.strStack.Advance(nil)
		return nil
	case OpAdvanceStrAppendChar:
		return d.opAdvanceStrAppendChar()
	case OpAdvanceStrComma:
		ch := byte(',')
		d.strStack.Advance(&ch)
		return nil
	case OpAdvanceStrNul:
		ch := byte(0)
		d.strStack.Advance(&ch)
		return nil
	case OpRewindStr:
		d.strStack.Rewind()
		return nil
	case OpTerminateRewindStr:
		d.strStack.TerminateRewind()
		return nil
	case OpCompareStr:
		return d.opCompareStr()
	case OpPush:
		return d.opPush()
	case OpPushFrame:
		d.argFrameStack = append(d.argFrameStack, d.argFrame)
		d.argFrame = ArgFrame{}
		return nil
	default:
		return &UnknownOpcodeError{IP: d.ip, Value: uint32(op)}
	}
}

func (d *Decoder) popInt() (IntOp, error) {
	v, ok := d.intStack.Pop()
	if !ok {
		return IntOp{}, &StackUnderflowError{Stack: "int", IP: d.ip}
	}
	return v, nil
}

func (d *Decoder) popFlt() (FltOp, error) {
	v, ok := d.fltStack.Pop()
	if !ok {
		return FltOp{}, &StackUnderflowError{Stack: "float", IP: d.ip}
	}
	return v, nil
}

func (d *Decoder) popStr() (ast.Expr, error) {
	v, ok := d.strStack.pop()
	if !ok || v.Pending {
		return nil, &TypeMismatchError{Stack: "string", IP: d.ip, Want: "value"}
	}
	if v.list != nil {
		return &ast.ConcatComma{Operands: v.list}, nil
	}
	return v.single, nil
}

// peekInt, peekFlt and peekStr read the top of their stack without
// removing it, matching the source's SAVEVAR_*/SAVEFIELD_* handlers which
// index self.intStack[-1]/self.fltStack[-1]/getStringValue() and leave the
// actual pop to the _TO_NONE opcode that follows.
func (d *Decoder) peekInt() (IntOp, error) {
	v, ok := d.intStack.Top()
	if !ok {
		return IntOp{}, &StackUnderflowError{Stack: "int", IP: d.ip}
	}
	return v, nil
}

func (d *Decoder) peekFlt() (FltOp, error) {
	v, ok := d.fltStack.Top()
	if !ok {
		return FltOp{}, &StackUnderflowError{Stack: "float", IP: d.ip}
	}
	return v, nil
}

func (d *Decoder) peekStr() (ast.Expr, error) {
	v, ok := d.strStack.Top()
	if !ok {
		return nil, &TypeMismatchError{Stack: "string", IP: d.ip, Want: "value"}
	}
	return v, nil
}
