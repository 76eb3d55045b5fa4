package dlog

// NopLogger discards everything. It is the default collaborator when the
// caller does not supply a Logger.
type NopLogger struct{}

func (NopLogger) Errorf(format string, v ...interface{})   {}
func (NopLogger) Warnf(format string, v ...interface{})    {}
func (NopLogger) Infof(format string, v ...interface{})    {}
func (NopLogger) Debugf(format string, v ...interface{})   {}
func (NopLogger) Verbosef(format string, v ...interface{}) {}

// OrNop returns l unchanged, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
