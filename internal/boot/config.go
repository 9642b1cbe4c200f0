package boot

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env           string `env:"ENV,default=dev"`
	Addr          string `env:"ADDR,default=:8080"`
	MetricsAddr   string `env:"METRICS_ADDR,default=:8081"`
	DataDirectory string `env:"DATA_DIR,default=./data"`

	AdminPIN      string `env:"ADMIN_PIN,default=1234"`
	SessionSecret string `env:"SESSION_SECRET,default=portfolio-admin-secret-key"`

	UploadDirectory string `env:"UPLOAD_DIR,default=ui/static/assets/img/portfolio"`

	SMTPHost string `env:"SMTP_HOST,default=smtp.gmail.com"`
	SMTPPort int    `env:"SMTP_PORT,default=587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	MailFrom string `env:"MAIL_FROM,default=Portfolio Admin <noreply@portfolio.local>"`
}

func Load() (Config, error) {
	config := Config{}
	if err := envconfig.Process(context.Background(), &config); err != nil {
		return Config{}, fmt.Errorf("parsing env vars: %w", err)
	}
	return config, nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == "dev"
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
