package config

type App struct {
	Port               string `env:"APP_PORT" default:"8080"`
	DatabaseURL        string `env:"DATABASE_URL,required"`
	SessionSecret      string `env:"SESSION_SECRET" default:"local_dev_secret"`
	FrontendOrigin     string `env:"FRONTEND_ORIGIN" default:"http://localhost:5173"`
	DefaultLibrarianID int64  `env:"DEFAULT_LIBRARIAN_ID" default:"9"`
	Env                string `env:"APP_ENV" default:"dev"`
}
