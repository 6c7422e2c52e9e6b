package mail

// Config is the SMTP relay and the addresses notifications use.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	To       string
}
