package main

// smState is one state of the expansion FSM (C4).
type smState int

const (
	stNormal smState = iota
	stLeadSeen
	stLeadAgain
	stWaitName
	stGettingArgNo
	stWaitArgEnd
	stGettingName
	stGettingBareArg
	stWaitArgOrMacroEnd
	stBegin1QuoteArgSeen
	stGettingQuotedArg
	stBegin1SeenWithinArg
	stEnd1QuoteArgSeen
	stDelimSeenEvalArg
)

// frame is one level of the evaluation stack. The reference implementation
// advances two adjacent array slots per recursive step: one holding the
// frame actually being run, one staging the metadata for whatever gets
// pushed next. A tagged Go stack doesn't need that staging slot, so each
// logical step here pushes exactly one frame (see DESIGN.md).
//
// sel/envArgBase/envNArg/argEval are fixed for the frame's lifetime: they
// describe the argument vector $(N) resolves against while this frame
// processes body text directly in stNormal. pendArgBase/pendNArg/quoteDepth/
// numAccum are scratch fields used only while this same frame is parsing a
// nested invocation out of its own body text (states stWaitName through
// stWaitArgOrMacroEnd and the quote states).
type frame struct {
	state      smState
	sel        int
	envArgBase int
	envNArg    int
	argEval    bool

	pendArgBase int
	pendNArg    int
	quoteDepth  int
	numAccum    int64
}
