package ports

// Subscription is the cancellation handle returned by every watch method.
// Cancel releases the underlying remote listener; implementations must make
// it safe to call more than once, releasing exactly once.
type Subscription interface {
	Cancel()
}

// SubscriptionFunc adapts a plain function to the Subscription interface.
type SubscriptionFunc func()

func (f SubscriptionFunc) Cancel() { f() }
