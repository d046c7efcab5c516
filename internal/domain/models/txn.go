package models

import "encoding/json"

// Transaction is the unsigned envelope of a programmable transaction: an
// ordered list of move calls against the external ticketing program. The
// fullnode interprets the envelope; this layer only constructs and signs it.
type Transaction struct {
	Sender string     `json:"sender"`
	Calls  []MoveCall `json:"calls"`
}

// MoveCall is one call in a transaction envelope.
type MoveCall struct {
	Target   string   `json:"target"`
	TypeArgs []string `json:"typeArgs,omitempty"`
	Args     []TxArg  `json:"args"`
}

// TxArg is a single move-call argument. Exactly one of the fields is set:
// a pure JSON value, an owned/shared object id, or the index of an earlier
// call whose result feeds this argument.
type TxArg struct {
	Pure   interface{} `json:"pure,omitempty"`
	Object string      `json:"object,omitempty"`
	Result *int        `json:"result,omitempty"`
}

// NewTransaction starts an empty envelope for the given sender.
func NewTransaction(sender string) *Transaction {
	return &Transaction{Sender: sender}
}

// AddCall appends a move call and returns its index, so later calls can
// reference its result.
func (t *Transaction) AddCall(target string, args ...TxArg) int {
	t.Calls = append(t.Calls, MoveCall{Target: target, Args: args})
	return len(t.Calls) - 1
}

// AddCallWithTypes appends a move call with type arguments.
func (t *Transaction) AddCallWithTypes(target string, typeArgs []string, args ...TxArg) int {
	t.Calls = append(t.Calls, MoveCall{Target: target, TypeArgs: typeArgs, Args: args})
	return len(t.Calls) - 1
}

// Pure wraps a plain JSON value argument.
func Pure(v interface{}) TxArg {
	return TxArg{Pure: v}
}

// PureBytes encodes a string as a vector<u8> argument, one number per byte.
func PureBytes(s string) TxArg {
	b := []byte(s)
	arr := make([]int, len(b))
	for i, v := range b {
		arr[i] = int(v)
	}
	return TxArg{Pure: arr}
}

// ObjectArg references an existing object by id.
func ObjectArg(id string) TxArg {
	return TxArg{Object: id}
}

// ResultArg references the result of an earlier call in the same envelope.
func ResultArg(index int) TxArg {
	return TxArg{Result: &index}
}

// ================================================================================
// Execution Results
// ================================================================================

// OwnedRef identifies an object touched by a transaction, with its type tag
// and owner address.
type OwnedRef struct {
	ObjectID string `json:"objectId"`
	Type     string `json:"type"`
	Owner    string `json:"owner"`
}

// TxEffects is the settled outcome of a transaction.
type TxEffects struct {
	Digest  string     `json:"digest"`
	Status  string     `json:"status"`
	Created []OwnedRef `json:"created,omitempty"`
}

// Succeeded reports whether the transaction settled successfully.
func (e *TxEffects) Succeeded() bool {
	return e.Status == "success"
}

// FirstCreatedByTypeSuffix returns the id of the first created object whose
// type tag ends with the given suffix, or "" when none matches.
func (e *TxEffects) FirstCreatedByTypeSuffix(suffix string) string {
	for _, ref := range e.Created {
		if len(ref.Type) >= len(suffix) && ref.Type[len(ref.Type)-len(suffix):] == suffix {
			return ref.ObjectID
		}
	}
	return ""
}

// ObjectData is the content of an on-chain object as returned by the
// fullnode's object-read interface. Field payloads stay raw; decoding of
// polymorphic text fields happens at the chain client boundary.
type ObjectData struct {
	ID     string                     `json:"id"`
	Type   string                     `json:"type"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// ChainEvent is one emitted program event.
type ChainEvent struct {
	TxDigest   string          `json:"txDigest"`
	Type       string          `json:"type"`
	ParsedJSON json.RawMessage `json:"parsedJson"`
}

// EventPage is one page of a program event query.
type EventPage struct {
	Events     []ChainEvent `json:"events"`
	NextCursor string       `json:"nextCursor"`
	HasNext    bool         `json:"hasNextPage"`
}
