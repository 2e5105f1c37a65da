package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	ProvidersFile      string
	Port               string
	WorkerCount        int
	MaxConcurrency     int
	AdapterTimeout     int // seconds
	TopActivities      int
	PlanRetentionHours int
	CleanupInterval    int // seconds
	APIAccessKey       string
	RedisAddr          string // empty disables the recommendation cache
	CacheTTLMinutes    int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
