package convert

// VisitorEventKind identifies the node/event a Visitor is being asked
// about (§4.8).
type VisitorEventKind int

const (
	EventElementStart VisitorEventKind = iota
	EventElementEnd
	EventText
	EventHeading
	EventLink
	EventImage
	EventStrong
	EventEm
	EventCodeInline
	EventCodeBlock
	EventListStart
	EventListEnd
	EventListItem
	EventBlockquote
	EventStrikethrough
	EventUnderline
)

// VisitorEvent describes one callback invocation. HeadingLevel and
// HeadingID are only meaningful for EventHeading.
type VisitorEvent struct {
	Kind         VisitorEventKind
	Tag          string
	Node         *Node
	HeadingLevel int
	HeadingID    string
}

// VisitorAction is the disposition a Visitor returns for an event
// (§4.8).
type VisitorActionKind int

const (
	ActionContinue VisitorActionKind = iota
	ActionSkip
	ActionCustom
	ActionPreserveHTML
	ActionError
)

// VisitorAction is returned by Visitor.Visit. Custom carries the literal
// replacement text for ActionCustom; Err carries the failure for
// ActionError.
type VisitorAction struct {
	Kind   VisitorActionKind
	Custom string
	Err    error
}

// Continue, Skip, PreserveHTML construct the common zero-payload actions.
func Continue() VisitorAction  { return VisitorAction{Kind: ActionContinue} }
func Skip() VisitorAction      { return VisitorAction{Kind: ActionSkip} }
func PreserveHTML() VisitorAction { return VisitorAction{Kind: ActionPreserveHTML} }

// Custom constructs an ActionCustom action carrying replacement text.
func Custom(text string) VisitorAction { return VisitorAction{Kind: ActionCustom, Custom: text} }

// VisitorErr constructs an ActionError action carrying err.
func VisitorErr(err error) VisitorAction { return VisitorAction{Kind: ActionError, Err: err} }

// Visitor is an external policy object that can observe and override
// rendering at each node (§4.8). The first reported Error wins; the
// walker continues traversal regardless so side-effectful visitors still
// see a consistent document (design notes §9).
type Visitor interface {
	Visit(ev VisitorEvent) VisitorAction
}

// dispatchVisitor invokes ctx.visitor if set, records the first error
// onto ctx, and returns the action (defaulting to Continue when there is
// no visitor).
func dispatchVisitor(ctx *Context, ev VisitorEvent) VisitorAction {
	if ctx.visitor == nil {
		return Continue()
	}
	action := ctx.visitor.Visit(ev)
	if action.Kind == ActionError && ctx.visitorErr == nil {
		ctx.visitorErr = &VisitorError{Node: ev.Tag, Err: action.Err}
	}
	return action
}
