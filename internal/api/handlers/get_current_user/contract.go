package get_current_user

type Logger interface {
	Warn(format string, v ...interface{})
}
