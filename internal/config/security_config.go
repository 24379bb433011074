package config

type SecurityConfig interface {
	GetLoginRatePerMinute() int
	GetLoginBurst() int
}

type Security struct {
	s settings
}

var _ SecurityConfig = Security{}

func (sc Security) GetLoginRatePerMinute() int {
	return sc.s.getInt("LOGIN_RATE_PER_MINUTE", 10)
}

func (sc Security) GetLoginBurst() int {
	return sc.s.getInt("LOGIN_BURST", 3)
}
