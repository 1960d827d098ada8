package output

type LoggerPort interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	With(args ...any) LoggerPort
	Named(name string) LoggerPort

	Close() error
}
