package staffservice

// Logger интерфейс логгера для клиента StaffService
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
