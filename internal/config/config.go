package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/types"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration. An empty URL disables publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ContractConfig is a contract watched by a worker
type ContractConfig struct {
	Address    string `mapstructure:"address"`
	StartBlock uint64 `mapstructure:"start_block"`
}

// EthereumConfig holds ledger connection settings
type EthereumConfig struct {
	RPCURL            string           `mapstructure:"rpc_url"`
	WebSocketURL      string           `mapstructure:"websocket_url"`
	ChainID           int64            `mapstructure:"chain_id"`
	CallTimeout       time.Duration    `mapstructure:"call_timeout"`
	RequestsPerSecond float64          `mapstructure:"requests_per_second"`
	RequestBurst      int              `mapstructure:"request_burst"`
	LogRangeLimit     uint64           `mapstructure:"log_range_limit"`
	NFTContracts      []ContractConfig `mapstructure:"nft_contracts"`
	QuestContract     ContractConfig   `mapstructure:"quest_contract"`
}

// ScannerConfig holds event-scan worker settings
type ScannerConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	BatchSize     uint64        `mapstructure:"batch_size"`
	Confirmations uint64        `mapstructure:"confirmations"`
}

// SweeperConfig holds pending-mint sweeper settings
type SweeperConfig struct {
	Interval       time.Duration `mapstructure:"interval"`
	BatchSize      int           `mapstructure:"batch_size"`
	Lease          time.Duration `mapstructure:"lease"`
	PoolSize       int           `mapstructure:"pool_size"`
	AlertThreshold int           `mapstructure:"alert_threshold"`
}

// ReconcilerConfig holds gap reconciliation settings
type ReconcilerConfig struct {
	RequestDelay      time.Duration `mapstructure:"request_delay"`
	Confirmations     int           `mapstructure:"confirmations"`
	ChunkSize         uint64        `mapstructure:"chunk_size"`
	PoolSize          int           `mapstructure:"pool_size"`
	DefaultUpperBound uint64        `mapstructure:"default_upper_bound"`
	CronSchedule      string        `mapstructure:"cron_schedule"`
}

// QuestConfig holds the quest catalog and the write retry policy
type QuestConfig struct {
	Catalog         []domain.QuestDefinition `mapstructure:"catalog"`
	RetryInitial    time.Duration            `mapstructure:"retry_initial"`
	RetryMaxRetries uint64                   `mapstructure:"retry_max_retries"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	ReconcileTaskQueue                 string  `mapstructure:"reconcile_task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// AlertConfig holds alert delivery settings
type AlertConfig struct {
	SlackWebhookURL string        `mapstructure:"slack_webhook_url"`
	Cooldown        time.Duration `mapstructure:"cooldown"`
}

// MetricsConfig holds the Prometheus listener of worker binaries
type MetricsConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
}

// IPFSConfig holds gateway settings for metadata references
type IPFSConfig struct {
	PreferredGateway string        `mapstructure:"preferred_gateway"`
	FallbackGateways []string      `mapstructure:"fallback_gateways"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	MaxElapsedTime   time.Duration `mapstructure:"max_elapsed_time"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration for administrative endpoints
type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
}

// SyncWorkerConfig holds configuration for sync-worker
type SyncWorkerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Scanner    ScannerConfig  `mapstructure:"scanner"`
	Sweeper    SweeperConfig  `mapstructure:"sweeper"`
	Quest      QuestConfig    `mapstructure:"quest"`
	Alert      AlertConfig    `mapstructure:"alert"`
	Metrics    MetricsConfig  `mapstructure:"metrics"`
	IPFS       IPFSConfig     `mapstructure:"ipfs"`
}

// ReconcileWorkerConfig holds configuration for reconcile-worker
type ReconcileWorkerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Temporal   TemporalConfig   `mapstructure:"temporal"`
	Ethereum   EthereumConfig   `mapstructure:"ethereum"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	IPFS       IPFSConfig       `mapstructure:"ipfs"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Temporal   TemporalConfig   `mapstructure:"temporal"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
}

// ReconcileCLIConfig holds configuration for the one-shot reconcile command
type ReconcileCLIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Ethereum   EthereumConfig   `mapstructure:"ethereum"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
	IPFS       IPFSConfig       `mapstructure:"ipfs"`
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setEthereumDefaults(v *viper.Viper) {
	v.SetDefault("ethereum.chain_id", 1)
	v.SetDefault("ethereum.call_timeout", "10s")
	v.SetDefault("ethereum.requests_per_second", 10)
	v.SetDefault("ethereum.request_burst", 5)
	v.SetDefault("ethereum.log_range_limit", 2000)
}

func setIPFSDefaults(v *viper.Viper) {
	v.SetDefault("ipfs.preferred_gateway", domain.DEFAULT_IPFS_GATEWAY)
	v.SetDefault("ipfs.fallback_gateways", domain.IPFS_FALLBACK_GATEWAYS)
	v.SetDefault("ipfs.fetch_timeout", "15s")
	v.SetDefault("ipfs.max_elapsed_time", "45s")
}

func setReconcilerDefaults(v *viper.Viper) {
	v.SetDefault("reconciler.request_delay", "100ms")
	v.SetDefault("reconciler.confirmations", 2)
	v.SetDefault("reconciler.chunk_size", 500)
	v.SetDefault("reconciler.pool_size", 4)
	v.SetDefault("reconciler.default_upper_bound", 0)
	v.SetDefault("reconciler.cron_schedule", "0 */6 * * *")
}

func setTemporalDefaults(v *viper.Viper) {
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.reconcile_task_queue", "ledger-reconciliation")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 10)
	v.SetDefault("temporal.worker_activities_per_second", 10)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 2)
}

func setNATSDefaults(v *viper.Viper, connectionName string) {
	v.SetDefault("nats.stream_name", "LEDGER_SYNC")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", connectionName)
}

// LoadSyncWorkerConfig loads configuration for sync-worker
func LoadSyncWorkerConfig(configFile string, envPath string) (*SyncWorkerConfig, error) {
	v := configureViper("sync-worker", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setEthereumDefaults(v)
	setIPFSDefaults(v)
	setNATSDefaults(v, "sync-worker")
	v.SetDefault("scanner.interval", "15s")
	v.SetDefault("scanner.batch_size", 1000)
	v.SetDefault("scanner.confirmations", 3)
	v.SetDefault("sweeper.interval", "1m")
	v.SetDefault("sweeper.batch_size", 50)
	v.SetDefault("sweeper.lease", "5m")
	v.SetDefault("sweeper.pool_size", 4)
	v.SetDefault("sweeper.alert_threshold", 10)
	v.SetDefault("quest.retry_initial", "1s")
	v.SetDefault("quest.retry_max_retries", 3)
	v.SetDefault("alert.cooldown", "1h")
	v.SetDefault("metrics.listen_address", ":9090")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config SyncWorkerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Ethereum.normalize()

	return &config, nil
}

// LoadReconcileWorkerConfig loads configuration for reconcile-worker
func LoadReconcileWorkerConfig(configFile string, envPath string) (*ReconcileWorkerConfig, error) {
	v := configureViper("reconcile-worker", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setEthereumDefaults(v)
	setIPFSDefaults(v)
	setReconcilerDefaults(v)
	setTemporalDefaults(v)
	setNATSDefaults(v, "reconcile-worker")
	v.SetDefault("metrics.listen_address", ":9091")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config ReconcileWorkerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Ethereum.normalize()

	return &config, nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setTemporalDefaults(v)
	setReconcilerDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadReconcileCLIConfig loads configuration for the reconcile command
func LoadReconcileCLIConfig(configFile string, envPath string) (*ReconcileCLIConfig, error) {
	v := configureViper("reconcile", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setEthereumDefaults(v)
	setIPFSDefaults(v)
	setReconcilerDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config ReconcileCLIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Ethereum.normalize()

	return &config, nil
}

// readConfig reads the config file, falling back to environment variables when none exists
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_SYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.websocket_url",
		"ethereum.chain_id",
		"ethereum.call_timeout",
		"ethereum.requests_per_second",
		"ethereum.request_burst",
		"ethereum.log_range_limit",
		"ethereum.quest_contract.address",
		"ethereum.quest_contract.start_block",
		// Workers
		"scanner.interval",
		"scanner.batch_size",
		"scanner.confirmations",
		"sweeper.interval",
		"sweeper.batch_size",
		"sweeper.lease",
		"sweeper.pool_size",
		"sweeper.alert_threshold",
		"reconciler.request_delay",
		"reconciler.confirmations",
		"reconciler.chunk_size",
		"reconciler.pool_size",
		"reconciler.default_upper_bound",
		"reconciler.cron_schedule",
		"quest.retry_initial",
		"quest.retry_max_retries",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.reconcile_task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Alerts and metrics
		"alert.slack_webhook_url",
		"alert.cooldown",
		"metrics.listen_address",
		// IPFS
		"ipfs.preferred_gateway",
		"ipfs.fallback_gateways",
		"ipfs.fetch_timeout",
		"ipfs.max_elapsed_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.api_keys",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica connection string, or DSN when no replica is configured.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	if c.ReadHost == "" {
		return c.DSN()
	}

	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}

// normalize lowercases configured contract addresses
func (c *EthereumConfig) normalize() {
	for i := range c.NFTContracts {
		c.NFTContracts[i].Address = types.NormalizeAddress(c.NFTContracts[i].Address)
	}
	c.QuestContract.Address = types.NormalizeAddress(c.QuestContract.Address)
}

// Validate checks the fields sync-worker cannot start without
func (c *SyncWorkerConfig) Validate() error {
	if err := c.Database.validate(); err != nil {
		return err
	}
	if c.Ethereum.RPCURL == "" {
		return errors.New("ethereum.rpc_url is required")
	}
	if len(c.Ethereum.NFTContracts) == 0 && c.Ethereum.QuestContract.Address == "" {
		return errors.New("ethereum.nft_contracts or ethereum.quest_contract is required")
	}
	for _, contract := range c.Ethereum.NFTContracts {
		if !types.IsEthereumAddress(contract.Address) {
			return fmt.Errorf("ethereum.nft_contracts: invalid address %q", contract.Address)
		}
	}
	if c.Ethereum.QuestContract.Address != "" {
		if !types.IsEthereumAddress(c.Ethereum.QuestContract.Address) {
			return fmt.Errorf("ethereum.quest_contract.address: invalid address %q", c.Ethereum.QuestContract.Address)
		}
		if c.Ethereum.WebSocketURL == "" {
			return errors.New("ethereum.websocket_url is required for the quest listener")
		}
		seen := make(map[uint64]bool, len(c.Quest.Catalog))
		for _, quest := range c.Quest.Catalog {
			if !quest.Type.Valid() {
				return fmt.Errorf("quest.catalog: unknown quest type %q", quest.Type)
			}
			if seen[quest.ID] {
				return fmt.Errorf("quest.catalog: duplicate quest id %d", quest.ID)
			}
			seen[quest.ID] = true
		}
	}
	if c.Scanner.BatchSize == 0 {
		return errors.New("scanner.batch_size must be positive")
	}
	if c.Sweeper.BatchSize <= 0 || c.Sweeper.PoolSize <= 0 {
		return errors.New("sweeper.batch_size and sweeper.pool_size must be positive")
	}
	return nil
}

// Validate checks the fields reconcile-worker cannot start without
func (c *ReconcileWorkerConfig) Validate() error {
	if err := c.Database.validate(); err != nil {
		return err
	}
	if c.Ethereum.RPCURL == "" {
		return errors.New("ethereum.rpc_url is required")
	}
	return c.Reconciler.validate()
}

// Validate checks the fields the reconcile command cannot run without
func (c *ReconcileCLIConfig) Validate() error {
	if err := c.Database.validate(); err != nil {
		return err
	}
	if c.Ethereum.RPCURL == "" {
		return errors.New("ethereum.rpc_url is required")
	}
	return c.Reconciler.validate()
}

// Validate checks the fields the API server cannot start without
func (c *APIConfig) Validate() error {
	return c.Database.validate()
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return errors.New("database.host is required")
	}
	if c.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

func (c *ReconcilerConfig) validate() error {
	if c.Confirmations < 1 {
		return errors.New("reconciler.confirmations must be at least 1")
	}
	if c.ChunkSize == 0 {
		return errors.New("reconciler.chunk_size must be positive")
	}
	if c.PoolSize <= 0 {
		return errors.New("reconciler.pool_size must be positive")
	}
	return nil
}
