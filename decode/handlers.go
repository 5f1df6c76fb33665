package decode

import (
	"github.com/misiektw/dso2cs/ast"
	"github.com/misiektw/dso2cs/dso"
)

// slot identifies which operand stack a LOADVAR/SAVEVAR/LOADFIELD/
// SAVEFIELD group of opcodes targets, so the three near-identical
// variants share one handler body (spec.md §9: version/shape selection
// as data, not branching code duplicated per type).
type slot int

const (
	loadUint slot = iota
	loadFlt
	loadStr
)

func (d *Decoder) opFuncDecl() error {
	name, err := d.getGlobalString()
	if err != nil {
		return err
	}
	nsOffset, err := d.bc.GetStringOffset()
	if err != nil {
		return err
	}
	var namespace string
	if nsOffset != 0 {
		namespace, err = d.file.GlobalStringTable.Get(int(nsOffset))
		if err != nil {
			return err
		}
	}
	pkg, err := d.getGlobalString()
	if err != nil {
		return err
	}
	hasBodyCode, err := d.bc.GetCode()
	if err != nil {
		return err
	}
	endCodeIdx, err := d.bc.GetCode()
	if err != nil {
		return err
	}
	end, err := d.byteIndexOf(endCodeIdx)
	if err != nil {
		return err
	}
	argcCode, err := d.bc.GetCode()
	if err != nil {
		return err
	}
	argc := int(argcCode)
	argv := make([]ast.Expr, 0, argc)
	for i := 0; i < argc; i++ {
		offset, err := d.bc.GetStringOffset()
		if err != nil {
			return err
		}
		s, err := d.file.GlobalStringTable.EnsurePrefixed(int(offset), '%')
		if err != nil {
			return err
		}
		argv = append(argv, &ast.IdentLit{Value: s})
	}

	decl := &ast.FuncDecl{
		Name:      name,
		Namespace: namespace,
		Package:   pkg,
		HasBody:   hasBodyCode != 0,
		End:       uint32(end),
		Argv:      argv,
	}
	n := d.tree.Append(decl)
	d.recordEndOfBlock(end, n)
	d.tree.FocusLastChild()
	d.inFunction++
	logger.Printf("ip=%d: declare function %s, namespace=%q, package=%q, hasBody=%v, end=%d, argc=%d",
		d.ip, name, namespace, pkg, decl.HasBody, end, argc)
	return nil
}

func (d *Decoder) opCreateObject() error {
	parent, err := d.getString()
	if err != nil {
		return err
	}
	isDblockU, err := d.bc.GetUint()
	if err != nil {
		return err
	}
	isInternal, err := d.bc.GetCode()
	if err != nil {
		return err
	}
	isMessage, err := d.bc.GetCode()
	if err != nil {
		return err
	}
	endIdx, err := d.bc.GetCode()
	if err != nil {
		return err
	}
	if _, err := d.byteIndexOf(endIdx); err != nil {
		return err
	}

	var argv []ast.Expr
	if len(d.argFrameStack) > 0 {
		argv = d.argFrame.Drain()
		d.argFrame = d.argFrameStack[len(d.argFrameStack)-1]
		d.argFrameStack = d.argFrameStack[:len(d.argFrameStack)-1]
	} else {
		argv = d.argFrame.Drain()
	}
	var objType string
	if len(argv) > 0 {
		objType = argv[0].Render()
		argv = argv[1:]
	}

	obj := ast.NewObjCreation(objType, parent, isDblockU != 0, isInternal != 0, isMessage != 0, argv)

	d.treeStack = append(d.treeStack, d.tree)
	root := ast.NewNode(obj)
	root.IsObject = true
	d.tree = ast.NewTree(root)
	d.inObject++
	logger.Printf("ip=%d: create object %d: parent=%q, isDatablock=%v, isInternal=%v, isMessage=%v",
		d.ip, d.inObject, parent, isDblockU != 0, isInternal != 0, isMessage != 0)
	return nil
}

func (d *Decoder) opAddObject() error {
	placeAtRoot, err := d.bc.GetCode()
	if err != nil {
		return err
	}
	rootExpr := &objRootExpr{node: d.tree.Root}
	if placeAtRoot != 0 && d.intStack.Len() > 0 {
		d.intStack.items[len(d.intStack.items)-1] = IntOp{Expr: rootExpr}
	} else {
		d.intStack.Push(IntOp{Expr: rootExpr})
	}
	logger.Printf("ip=%d: add object, placeAtRoot=%v", d.ip, placeAtRoot != 0)
	return nil
}

func (d *Decoder) opEndObject() error {
	if len(d.treeStack) == 0 {
		return &StackUnderflowError{Stack: "tree", IP: d.ip}
	}
	// The object's own root node, still current until the tree swap below,
	// the same node ADD_OBJECT pushed onto the int stack.
	objRoot := d.tree.Root
	d.tree = d.treeStack[len(d.treeStack)-1]
	d.treeStack = d.treeStack[:len(d.treeStack)-1]

	// CREATE_OBJECT immediately followed by ADD_OBJECT with no opcodes in
	// between means the object has no body at all: print it without braces
	// (matching the source's callStack[-2]/[-1] check).
	if d.prevPrevOp == OpCreateObject && d.prevOp == OpAddObject {
		if obj, ok := objRoot.Stmt.(*ast.ObjCreation); ok {
			obj.ClearBlock()
		}
	}

	placeAtRoot, err := d.bc.GetCode()
	if err != nil {
		return err
	}
	if placeAtRoot == 0 {
		v, ok := d.intStack.Pop()
		if !ok {
			return &StackUnderflowError{Stack: "int", IP: d.ip}
		}
		if re, ok := v.Expr.(*objRootExpr); ok {
			d.tree.AppendNode(re.node)
		}
	}
	d.inObject--
	logger.Printf("ip=%d: end object, depth=%d, hadBody=%v", d.ip, d.inObject, objRoot.Stmt.IsBlock())
	return nil
}

// objRootExpr is a bookkeeping carrier: it lets the int stack hold "the
// object subtree just finished" (as ADD_OBJECT/END_OBJECT do in the
// source) without giving Expr a dependency on *ast.Node. When it is
// assigned, Decoder.assign moves the subtree's children onto the
// Assignment node and keeps this carrier as the right-hand side, so
// Render prints the object's header line there.
type objRootExpr struct{ node *ast.Node }

func (e *objRootExpr) Render() string { return e.node.Stmt.Header() }

func (d *Decoder) jumpTarget() (int, error) {
	codeIdx, err := d.bc.GetCode()
	if err != nil {
		return 0, err
	}
	byteIdx, err := d.byteIndexOf(codeIdx)
	if err != nil {
		return 0, err
	}
	return byteIdx - d.offset, nil
}

func (d *Decoder) consumeBinCondition(popped ast.Expr) ast.Expr {
	if len(d.binStack) == 0 {
		return popped
	}
	top := d.binStack[len(d.binStack)-1]
	d.binStack = d.binStack[:len(d.binStack)-1]
	top.conds = append(top.conds, popped)
	return top.fold()
}

func (d *Decoder) popCondition(float bool) (ast.Expr, error) {
	if float {
		v, err := d.popFlt()
		if err != nil {
			return nil, err
		}
		return d.consumeBinCondition(v.Expr), nil
	}
	v, err := d.popInt()
	if err != nil {
		return nil, err
	}
	return d.consumeBinCondition(v.Expr), nil
}

// opJmpIfNot implements JMPIFNOT/JMPIFFNOT (spec.md §4.4.1): a forward
// jump opens an If on the untouched condition; a backward jump confirms
// (or promotes) the focused node into a While whose condition is the
// logical complement.
func (d *Decoder) opJmpIfNot(float bool) error {
	target, err := d.jumpTarget()
	if err != nil {
		return err
	}
	cond, err := d.popCondition(float)
	if err != nil {
		return err
	}
	cur := d.bc.Cursor()
	switch {
	case target > cur:
		n := d.tree.Append(&ast.If{Condition: cond})
		d.recordEndOfBlock(target, n)
		d.tree.FocusLastChild()
	case target < cur:
		focused := d.tree.Current()
		if w, ok := focused.Stmt.(*ast.While); ok && w.Condition == nil {
			w.Condition = &ast.Not{X: cond}
			return nil
		}
		if _, ok := focused.Stmt.(*ast.If); !ok {
			return &LoopConditionMismatchError{IP: d.ip, Target: target}
		}
		focused.Replace(&ast.While{Condition: &ast.Not{X: cond}}, false)
	}
	return nil
}

// opJmpIf implements JMPIF/JMPIFF: a forward jump opens an If on the
// negated condition (the compiler emits JMPIF to skip the then-block when
// the condition is true); a backward jump confirms/promotes the loop
// using the condition as-is.
func (d *Decoder) opJmpIf(float bool) error {
	target, err := d.jumpTarget()
	if err != nil {
		return err
	}
	cond, err := d.popCondition(float)
	if err != nil {
		return err
	}
	cur := d.bc.Cursor()
	switch {
	case target > cur:
		n := d.tree.Append(&ast.If{Condition: &ast.Not{X: cond}})
		d.recordEndOfBlock(target, n)
		d.tree.FocusLastChild()
	case target < cur:
		focused := d.tree.Current()
		if w, ok := focused.Stmt.(*ast.While); ok && w.Condition == nil {
			w.Condition = cond
			return nil
		}
		if _, ok := focused.Stmt.(*ast.If); !ok {
			return &LoopConditionMismatchError{IP: d.ip, Target: target}
		}
		focused.Replace(&ast.While{Condition: cond}, false)
	}
	return nil
}

func (d *Decoder) opJmp() error {
	target, err := d.jumpTarget()
	if err != nil {
		return err
	}
	cur := d.bc.Cursor()
	if target <= cur {
		return &NotImplementedError{Op: OpJmp}
	}
	focused := d.tree.Current()
	if nodes, ok := d.endBlock[cur]; ok && containsNode(nodes, focused) {
		if _, ok := d.endBlock[target]; ok {
			d.tree.Append(&ast.Break{})
			return nil
		}
		// focused (the If) closes here too; pop it ourselves and drop its
		// endBlock entry so the Run loop's own close right after this
		// dispatch doesn't also pop the Else we're about to enter.
		d.removeEndBlock(cur, focused)
		d.tree.FocusParent()
		n := d.tree.Append(&ast.Else{})
		if ifStmt, ok := focused.Stmt.(*ast.If); ok {
			ifStmt.ElseNode = n
		}
		d.recordEndOfBlock(target, n)
		d.tree.FocusLastChild()
		return nil
	}
	stmt := &ast.While{}
	n := d.tree.Append(stmt)
	d.recordEndOfBlock(target, n)
	d.tree.FocusLastChild()
	return nil
}

func containsNode(nodes []*ast.Node, n *ast.Node) bool {
	for _, c := range nodes {
		if c == n {
			return true
		}
	}
	return false
}

// removeEndBlock drops n from the end-of-block registration at offset,
// for a close the caller is already handling itself.
func (d *Decoder) removeEndBlock(offset int, n *ast.Node) {
	nodes := d.endBlock[offset]
	for i, c := range nodes {
		if c == n {
			nodes = append(nodes[:i], nodes[i+1:]...)
			break
		}
	}
	if len(nodes) == 0 {
		delete(d.endBlock, offset)
	} else {
		d.endBlock[offset] = nodes
	}
}

func (d *Decoder) opJmpIfNotNP() error {
	if _, err := d.jumpTarget(); err != nil {
		return err
	}
	v, err := d.popInt()
	if err != nil {
		return err
	}
	d.pushBinOperand(true, v.Expr)
	return nil
}

func (d *Decoder) opJmpIfNP() error {
	if _, err := d.jumpTarget(); err != nil {
		return err
	}
	v, err := d.popInt()
	if err != nil {
		return err
	}
	d.pushBinOperand(false, v.Expr)
	return nil
}

func (d *Decoder) pushBinOperand(isAnd bool, operand ast.Expr) {
	if len(d.binStack) > 0 {
		top := d.binStack[len(d.binStack)-1]
		top.conds = append(top.conds, operand)
		d.binStack = append(d.binStack[:len(d.binStack)-1], &condBuilder{isAnd: isAnd, conds: []ast.Expr{top.fold()}})
		return
	}
	d.binStack = append(d.binStack, &condBuilder{isAnd: isAnd, conds: []ast.Expr{operand}})
}

// opReturn suppresses the bare implicit RETURN the compiler always emits
// immediately before the end-of-stream sentinel (spec.md §4.3's "suppress
// redundant trailing RETURN"). A RETURN carrying a value, or one not
// immediately followed by the sentinel, is always kept. Two back-to-back
// RETURNs (an explicit one followed by the compiler's implicit one) are
// not yet collapsed; that is a known simplification (see DESIGN.md).
func (d *Decoder) opReturn() error {
	val, _ := d.strStack.Top()
	if val == nil {
		if next, err := d.bc.PeekCode(); err == nil && next == dso.EndSentinel {
			logger.Printf("ip=%d: suppressing implicit trailing return", d.ip)
			return nil
		}
	}
	d.strStack.pop()
	if val != nil {
		d.tree.Append(&ast.Return{Value: val})
	} else {
		d.tree.Append(&ast.Return{})
	}
	logger.Printf("ip=%d: return, hasValue=%v", d.ip, val != nil)
	return nil
}

func (d *Decoder) opCompare(op Opcode) error {
	r, err := d.popFlt()
	if err != nil {
		return err
	}
	l, err := d.popFlt()
	if err != nil {
		return err
	}
	var e ast.Expr
	switch op {
	case OpCmpEq:
		e = &ast.Eq{L: l.Expr, R: r.Expr}
	case OpCmpLt:
		e = &ast.Lt{L: l.Expr, R: r.Expr}
	case OpCmpLe:
		e = &ast.Le{L: l.Expr, R: r.Expr}
	case OpCmpGr:
		e = &ast.Gt{L: l.Expr, R: r.Expr}
	case OpCmpGe:
		e = &ast.Ge{L: l.Expr, R: r.Expr}
	case OpCmpNe:
		e = &ast.Neq{L: l.Expr, R: r.Expr}
	}
	d.intStack.Push(IntOp{Expr: e})
	return nil
}

func (d *Decoder) opArith(op Opcode) error {
	switch op {
	case OpXor, OpMod, OpBitAnd, OpBitOr, OpShr, OpShl, OpAnd, OpOr:
		r, err := d.popInt()
		if err != nil {
			return err
		}
		l, err := d.popInt()
		if err != nil {
			return err
		}
		var e ast.Expr
		switch op {
		case OpXor:
			e = &ast.Xor{L: l.Expr, R: r.Expr}
		case OpMod:
			e = &ast.Mod{L: l.Expr, R: r.Expr}
		case OpBitAnd:
			e = &ast.BitAnd{L: l.Expr, R: r.Expr}
		case OpBitOr:
			e = &ast.BitOr{L: l.Expr, R: r.Expr}
		case OpShr:
			e = &ast.Shr{L: l.Expr, R: r.Expr}
		case OpShl:
			e = &ast.Shl{L: l.Expr, R: r.Expr}
		case OpAnd:
			e = &ast.And{L: l.Expr, R: r.Expr}
		case OpOr:
			e = &ast.Or{L: l.Expr, R: r.Expr}
		}
		d.intStack.Push(IntOp{Expr: e})
		return nil
	default: // ADD/SUB/MUL/DIV operate on floats
		r, err := d.popFlt()
		if err != nil {
			return err
		}
		l, err := d.popFlt()
		if err != nil {
			return err
		}
		var e ast.Expr
		switch op {
		case OpAdd:
			e = &ast.Add{L: l.Expr, R: r.Expr}
		case OpSub:
			e = &ast.Sub{L: l.Expr, R: r.Expr}
		case OpMul:
			e = &ast.Mul{L: l.Expr, R: r.Expr}
		case OpDiv:
			e = &ast.Div{L: l.Expr, R: r.Expr}
		}
		d.fltStack.Push(FltOp{Expr: e})
		return nil
	}
}

func (d *Decoder) opNot() error {
	v, err := d.popInt()
	if err != nil {
		return err
	}
	d.intStack.Push(IntOp{Expr: &ast.Not{X: v.Expr}})
	return nil
}

func (d *Decoder) opNotF() error {
	v, err := d.popFlt()
	if err != nil {
		return err
	}
	d.intStack.Push(IntOp{Expr: &ast.Not{X: v.Expr}})
	return nil
}

func (d *Decoder) opComplement() error {
	v, err := d.popInt()
	if err != nil {
		return err
	}
	d.intStack.Push(IntOp{Expr: &ast.Complement{X: v.Expr}})
	return nil
}

func (d *Decoder) opNeg() error {
	v, err := d.popFlt()
	if err != nil {
		return err
	}
	d.fltStack.Push(FltOp{Expr: &ast.Neg{X: v.Expr}})
	return nil
}

func (d *Decoder) opSetCurVar() error {
	offset, err := d.bc.GetStringOffset()
	if err != nil {
		return err
	}
	prefix := byte('$')
	if d.inFunction > 0 {
		prefix = '%'
	}
	name, err := d.file.GlobalStringTable.EnsurePrefixed(int(offset), prefix)
	if err != nil {
		return err
	}
	d.curVar = &ast.IdentLit{Value: name}
	d.curObj = nil
	return nil
}

func (d *Decoder) opSetCurVarArray() error {
	top, ok := d.strStack.Top()
	if !ok {
		return &TypeMismatchError{Stack: "string", IP: d.ip, Want: "array index"}
	}
	d.strStack.pop()
	d.curVar = &ast.ArrayAccess{Array: top}
	return nil
}

func (d *Decoder) opLoadVar(s slot) error {
	switch s {
	case loadUint:
		d.intStack.Push(IntOp{Expr: d.curVar})
	case loadFlt:
		d.fltStack.Push(FltOp{Expr: d.curVar})
	case loadStr:
		d.strStack.Load(d.curVar)
	}
	return nil
}

// opSaveVar peeks (does not pop) its operand stack: the value stays in
// place for the following _TO_NONE opcode to actually consume, the way
// the source's opSavevarUint/Flt/Str index self.intStack[-1] rather than
// popping it.
func (d *Decoder) opSaveVar(s slot) error {
	var rhs ast.Expr
	switch s {
	case loadUint:
		v, err := d.peekInt()
		if err != nil {
			return err
		}
		rhs = v.Expr
	case loadFlt:
		v, err := d.peekFlt()
		if err != nil {
			return err
		}
		rhs = v.Expr
	case loadStr:
		v, err := d.peekStr()
		if err != nil {
			return err
		}
		rhs = v
	}
	d.assign(d.curVar, rhs)
	return nil
}

// assign normalizes and appends an Assignment node. It recognizes the
// AddPP/SubPP post-increment idiom and splices an object-creation
// subtree's block onto the Assignment directly, in one pass rather than
// scattering the checks (spec.md §9).
func (d *Decoder) assign(left, right ast.Expr) {
	if re, ok := right.(*objRootExpr); ok {
		a := ast.NewObjectAssignment(left, re)
		n := ast.NewNode(a)
		n.IsObject = true
		n.Children = re.node.Children
		for _, c := range n.Children {
			c.Parent = n
		}
		d.tree.AppendNode(n)
		return
	}
	right = normalizeIncDec(left, right)
	d.tree.Append(&ast.Assignment{Left: left, Right: right})
}

// normalizeIncDec recognizes the SETCURVAR_CREATE + LOADVAR_FLT +
// LOADIMMED_UINT(1) + ADD + SAVEVAR_FLT (and SUB) sequence that compiles
// "var++"/"var--", rewriting the right-hand side to AddPP/SubPP so the
// Assignment node's own idiom check prints the bare form (spec.md
// §4.4.5).
func normalizeIncDec(left, right ast.Expr) ast.Expr {
	switch r := right.(type) {
	case *ast.Add:
		if isSameIdent(r.L, left) && isUintOne(r.R) {
			return &ast.AddPP{X: left}
		}
	case *ast.Sub:
		if isSameIdent(r.L, left) && isUintOne(r.R) {
			return &ast.SubPP{X: left}
		}
	}
	return right
}

func isSameIdent(a, b ast.Expr) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Render() == b.Render()
}

func isUintOne(e ast.Expr) bool {
	v, ok := e.(*ast.UintLit)
	return ok && v.Value == 1
}

func (d *Decoder) opSetCurObject() error {
	v, err := d.popStr()
	if err != nil {
		return err
	}
	d.curObj = v
	return nil
}

func (d *Decoder) opSetCurField() error {
	name, err := d.getString()
	if err != nil {
		return err
	}
	d.curField = &ast.FieldName{Name: name}
	return nil
}

func (d *Decoder) opSetCurFieldArray() error {
	top, ok := d.strStack.Top()
	if !ok {
		return &TypeMismatchError{Stack: "string", IP: d.ip, Want: "field index"}
	}
	d.strStack.pop()
	d.curField = top
	return nil
}

// fieldAccess builds the current field's access expression. While curObj
// is unset (as inside an object-creation body, where no SETCUROBJECT has
// run), the target is the bare field name rather than object.field, matching the
// source's curobj is None special case in opSavefieldUint/Flt/Str.
func (d *Decoder) fieldAccess() ast.Expr {
	if d.curObj == nil {
		return d.curField
	}
	return &ast.FieldAccess{Object: d.curObj, Field: d.curField}
}

func (d *Decoder) opLoadField(s slot) error {
	fa := d.fieldAccess()
	switch s {
	case loadUint:
		d.intStack.Push(IntOp{Expr: fa})
	case loadFlt:
		d.fltStack.Push(FltOp{Expr: fa})
	case loadStr:
		d.strStack.Load(fa)
	}
	return nil
}

// opSaveField peeks its operand stack for the same reason opSaveVar does.
func (d *Decoder) opSaveField(s slot) error {
	var rhs ast.Expr
	switch s {
	case loadUint:
		v, err := d.peekInt()
		if err != nil {
			return err
		}
		rhs = v.Expr
	case loadFlt:
		v, err := d.peekFlt()
		if err != nil {
			return err
		}
		rhs = v.Expr
	case loadStr:
		v, err := d.peekStr()
		if err != nil {
			return err
		}
		rhs = v
	}
	d.assign(d.fieldAccess(), rhs)
	return nil
}

// conversions: every typed stack already carries the producing Expr
// alongside its value, so STR_TO_UINT and friends just move that Expr to
// the destination stack rather than re-deriving a value.

func (d *Decoder) opStrToUint() error {
	v, err := d.popStr()
	if err != nil {
		return err
	}
	d.intStack.Push(IntOp{Expr: v})
	return nil
}

func (d *Decoder) opStrToFlt() error {
	v, err := d.popStr()
	if err != nil {
		return err
	}
	d.fltStack.Push(FltOp{Expr: v})
	return nil
}

func (d *Decoder) opStrToNone() error {
	v, err := d.popStr()
	if err != nil {
		return err
	}
	d.discardIfUnassignedObject(v)
	return nil
}

func (d *Decoder) opFltToUint() error {
	v, err := d.popFlt()
	if err != nil {
		return err
	}
	d.intStack.Push(IntOp{Expr: v.Expr})
	return nil
}

func (d *Decoder) opFltToStr() error {
	v, err := d.popFlt()
	if err != nil {
		return err
	}
	d.strStack.Load(v.Expr)
	return nil
}

func (d *Decoder) opFltToNone() error {
	v, err := d.popFlt()
	if err != nil {
		return err
	}
	d.discardIfUnassignedObject(v.Expr)
	return nil
}

func (d *Decoder) opUintToFlt() error {
	v, err := d.popInt()
	if err != nil {
		return err
	}
	d.fltStack.Push(FltOp{Expr: v.Expr})
	return nil
}

func (d *Decoder) opUintToStr() error {
	v, err := d.popInt()
	if err != nil {
		return err
	}
	d.strStack.Load(v.Expr)
	return nil
}

func (d *Decoder) opUintToNone() error {
	v, err := d.popInt()
	if err != nil {
		return err
	}
	d.discardIfUnassignedObject(v.Expr)
	return nil
}

// discardIfUnassignedObject turns a value popped and discarded instead of
// assigned into a statement of its own: a bare object-creation subtree is
// appended as an orphan statement (spec.md §4.4.3's "declared but not
// assigned" case), and a function call becomes an ExprStmt. A value the
// opcode just before stored through SAVEVAR/SAVEFIELD is already part of
// that Assignment and is left alone.
func (d *Decoder) discardIfUnassignedObject(v ast.Expr) {
	switch d.prevOp {
	case OpSaveVarUint, OpSaveVarFlt, OpSaveVarStr, OpSaveFieldUint, OpSaveFieldFlt, OpSaveFieldStr:
		return
	}
	switch x := v.(type) {
	case *objRootExpr:
		d.tree.AppendNode(x.node)
	case *ast.FuncCall:
		d.tree.Append(&ast.ExprStmt{X: x})
	}
}

func (d *Decoder) opLoadImmedUint() error {
	v, err := d.bc.GetUint()
	if err != nil {
		return err
	}
	d.intStack.Push(IntOp{Value: int64(v), Expr: &ast.UintLit{Value: int64(v)}})
	return nil
}

func (d *Decoder) opLoadImmedFlt() error {
	f, err := d.getFloat()
	if err != nil {
		return err
	}
	d.fltStack.Push(FltOp{Value: f, Expr: &ast.FloatLit{Value: f}})
	return nil
}

func (d *Decoder) opLoadImmedStr() error {
	s, err := d.getString()
	if err != nil {
		return err
	}
	d.strStack.Load(&ast.StringLit{Value: s})
	return nil
}

func (d *Decoder) opLoadImmedIdent() error {
	s, err := d.getString()
	if err != nil {
		return err
	}
	d.strStack.Load(&ast.IdentLit{Value: s})
	return nil
}

func (d *Decoder) opTagToStr() error {
	s, err := d.getGlobalString()
	if err != nil {
		return err
	}
	d.strStack.Load(&ast.StringLit{Value: s})
	return nil
}

func (d *Decoder) opCallFunc() error {
	name, err := d.getGlobalString()
	if err != nil {
		return err
	}
	nsOffset, err := d.bc.GetStringOffset()
	if err != nil {
		return err
	}
	var namespace string
	if nsOffset != 0 {
		namespace, err = d.file.GlobalStringTable.Get(int(nsOffset))
		if err != nil {
			return err
		}
	}
	callTypeCode, err := d.bc.GetCode()
	if err != nil {
		return err
	}

	argv := d.argFrame.Drain()
	if len(d.argFrameStack) > 0 {
		d.argFrame = d.argFrameStack[len(d.argFrameStack)-1]
		d.argFrameStack = d.argFrameStack[:len(d.argFrameStack)-1]
	}

	call := &ast.FuncCall{Name: name, Namespace: namespace, Type: ast.CallType(callTypeCode)}
	if call.Type == ast.CallMethod && len(argv) > 0 {
		call.ObjName = argv[0]
		call.Argv = argv[1:]
	} else {
		call.Argv = argv
	}
	d.strStack.Load(call)
	return nil
}

func (d *Decoder) opAdvanceStrAppendChar() error {
	c, err := d.bc.GetCode()
	if err != nil {
		return err
	}
	ch := byte(c)
	d.strStack.Advance(&ch)
	return nil
}

func (d *Decoder) opCompareStr() error {
	s2, err := d.popStr()
	if err != nil {
		return err
	}
	s1, err := d.popStr()
	if err != nil {
		return err
	}
	d.intStack.Push(IntOp{Expr: &ast.StringEq{Operands: []ast.Expr{s1, s2}}})
	return nil
}

func (d *Decoder) opPush() error {
	v, err := d.popStr()
	if err != nil {
		return err
	}
	d.argFrame.Push(v)
	return nil
}
