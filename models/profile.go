package models

import "time"

// Attribute value kinds. Profiles carry a closed set of typed attribute
// variants so the feature extractor can map them exhaustively.
const (
	AttrNumber   = "number"
	AttrCategory = "category"
	AttrSet      = "set"
	AttrSpan     = "span"
)

// Span is a numeric range (budget in EUR, move-in window in days, lease
// duration in months). Lo <= Hi.
type Span struct {
	Lo float64 `dynamodbav:"lo" json:"lo"`
	Hi float64 `dynamodbav:"hi" json:"hi"`
}

// Width returns the size of the span.
func (s Span) Width() float64 {
	return s.Hi - s.Lo
}

// AttributeValue is a single typed profile attribute. Exactly one of the
// value fields is meaningful, selected by Kind.
type AttributeValue struct {
	Kind     string   `dynamodbav:"kind" json:"kind"`
	Number   float64  `dynamodbav:"number,omitempty" json:"number,omitempty"`
	Category string   `dynamodbav:"category,omitempty" json:"category,omitempty"`
	Set      []string `dynamodbav:"set,omitempty" json:"set,omitempty"`
	Span     Span     `dynamodbav:"span,omitempty" json:"span,omitempty"`
}

// NumberAttr builds a numeric attribute.
func NumberAttr(v float64) AttributeValue {
	return AttributeValue{Kind: AttrNumber, Number: v}
}

// CategoryAttr builds a categorical attribute.
func CategoryAttr(v string) AttributeValue {
	return AttributeValue{Kind: AttrCategory, Category: v}
}

// SetAttr builds a set-of-categories attribute.
func SetAttr(values ...string) AttributeValue {
	return AttributeValue{Kind: AttrSet, Set: values}
}

// SpanAttr builds a numeric-range attribute.
func SpanAttr(lo, hi float64) AttributeValue {
	return AttributeValue{Kind: AttrSpan, Span: Span{Lo: lo, Hi: hi}}
}

// Profile is a person or property eligible for matching. Profiles are
// soft-invalidated (Active=false) rather than deleted while decisions or
// matches still reference them.
type Profile struct {
	ProfileID   string                    `dynamodbav:"profileId" json:"profileId"`
	Kind        string                    `dynamodbav:"kind" json:"kind"`
	DisplayName string                    `dynamodbav:"displayName,omitempty" json:"displayName,omitempty"`
	Attributes  map[string]AttributeValue `dynamodbav:"attributes" json:"attributes"`
	AttrVersion int64                     `dynamodbav:"attrVersion" json:"attrVersion"`
	Active      bool                      `dynamodbav:"active" json:"active"`
	CreatedAt   time.Time                 `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time                 `dynamodbav:"updatedAt" json:"updatedAt"`
}

// Attr returns the named attribute and whether it is present.
func (p *Profile) Attr(name string) (AttributeValue, bool) {
	v, ok := p.Attributes[name]
	return v, ok
}
