package service

type Config struct {
	DatabaseUri             string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatabaseTimeout         int     `envconfig:"DATABASE_TIMEOUT" default:"60"`             // 60 seconds
	SentryDSN               string  `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	DatadogAgentUrl         string  `envconfig:"DATADOG_AGENT_URL"`
	LogFilePath             string  `envconfig:"LOG_FILE_PATH"`
	JWTSecret               []byte  `envconfig:"JWT_SECRET" required:"true"`
	AdminToken              string  `envconfig:"ADMIN_TOKEN"`
	JWTRefreshTokenExpiry   int     `envconfig:"JWT_REFRESH_EXPIRY" default:"604800"` // in seconds, default 7 days
	JWTAccessTokenExpiry    int     `envconfig:"JWT_ACCESS_EXPIRY" default:"172800"`  // in seconds, default 2 days
	Host                    string  `envconfig:"HOST" default:"localhost:3000"`
	Port                    int     `envconfig:"PORT" default:"3000"`
	PublicURL               string  `envconfig:"PUBLIC_URL" default:"http://localhost:3000"`
	DefaultRateLimit        int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit         int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit          int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus        bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort          int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	AllowAccountCreation    bool    `envconfig:"ALLOW_ACCOUNT_CREATION" default:"true"`
	MinPasswordEntropy      int     `envconfig:"MIN_PASSWORD_ENTROPY" default:"0"`
	SMTPHost                string  `envconfig:"SMTP_HOST"`
	SMTPPort                int     `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername            string  `envconfig:"SMTP_USERNAME"`
	SMTPPassword            string  `envconfig:"SMTP_PASSWORD"`
	SMTPFrom                string  `envconfig:"SMTP_FROM" default:"invoices@localhost"`
	// atomic: invoice creation fails when the client notification cannot be
	// sent (matches the historical behavior, the row is committed regardless).
	// async: the mail is dispatched by a background routine with retries.
	InvoiceNotification          string `envconfig:"INVOICE_NOTIFICATION" default:"atomic"`
	RabbitMQUri                  string `envconfig:"RABBITMQ_URI"`
	RabbitMQInvoiceExchange      string `envconfig:"RABBITMQ_INVOICE_EXCHANGE" default:"invoicehub_invoice"`
	Branding                     BrandingConfig
}

type BrandingConfig struct {
	Title string `envconfig:"BRANDING_TITLE" default:"InvoiceHub.go"`
	Desc  string `envconfig:"BRANDING_DESC" default:"Invoicing for freelancers"`
	Url   string `envconfig:"BRANDING_URL" default:"https://invoicehub.example.com"`
}
