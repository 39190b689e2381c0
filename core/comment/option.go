package comment

type options struct {
	skipNotifications bool
	skipAuditLog      bool
}

type Option func(*options)

// SkipNotifications stores the comment without telling the other participants
func SkipNotifications() Option {
	return func(opts *options) {
		opts.skipNotifications = true
	}
}

// SkipAuditLog is used when the caller already audits the action the comment belongs to
func SkipAuditLog() Option {
	return func(opts *options) {
		opts.skipAuditLog = true
	}
}

func getOptions(opts ...Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
