package swbus

// Filter decides whether a message id is accepted, used both as the bus's
// single admission filter and as each channel's per-subscriber filter.
type Filter interface {
	Accepts(id uint32) bool
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(id uint32) bool

// Accepts calls f(id).
func (f FilterFunc) Accepts(id uint32) bool {
	return f(id)
}

// RangeFilter accepts any id within the closed interval [Min, Max].
type RangeFilter struct {
	Min uint32
	Max uint32
}

// Accepts reports whether id falls within the filter's closed range.
func (r RangeFilter) Accepts(id uint32) bool {
	return id >= r.Min && id <= r.Max
}

// AcceptAllFilter accepts every id unconditionally.
type AcceptAllFilter struct{}

// Accepts always returns true.
func (AcceptAllFilter) Accepts(uint32) bool {
	return true
}

// Subscription matches a single message id, the bus's subscription-filter
// building block: a channel's filter typically fans out to a
// SubscriptionSet of these.
type Subscription struct {
	ID uint32
}

// Accepts reports whether id equals the subscription's id.
func (s Subscription) Accepts(id uint32) bool {
	return id == s.ID
}

// SubscriptionSet matches an id against any of its member subscriptions.
type SubscriptionSet struct {
	subscriptions []Subscription
}

// Add registers sub with the set.
func (s *SubscriptionSet) Add(sub Subscription) {
	s.subscriptions = append(s.subscriptions, sub)
}

// Remove unregisters the first subscription matching id, if any.
func (s *SubscriptionSet) Remove(id uint32) {
	for i, sub := range s.subscriptions {
		if sub.ID == id {
			s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
			return
		}
	}
}

// Accepts reports whether any member subscription matches id.
func (s *SubscriptionSet) Accepts(id uint32) bool {
	for _, sub := range s.subscriptions {
		if sub.Accepts(id) {
			return true
		}
	}
	return false
}
