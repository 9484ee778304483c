package types

import "time"

// Config is a struct to hold the configuration data
type Config struct {
	LogLevel string         `yaml:"logLevel" envconfig:"LOG_LEVEL"`
	Chain    ChainConfig    `yaml:"chain"`
	Ens      EnsConfig      `yaml:"ens"`
	Subgraph SubgraphConfig `yaml:"subgraph"`
	Api      ApiConfig      `yaml:"api"`
	Metrics  struct {
		Enabled bool   `yaml:"enabled" envconfig:"METRICS_ENABLED"`
		Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`
	} `yaml:"metrics"`
}

// ChainConfig describes the rpc endpoint and the identity that signs all outgoing transactions
type ChainConfig struct {
	Endpoint       string  `yaml:"endpoint" envconfig:"CHAIN_ENDPOINT"`
	ChainID        uint64  `yaml:"chainId" envconfig:"CHAIN_ID"`
	PrivateKey     string  `yaml:"privateKey" envconfig:"CHAIN_PRIVATE_KEY"`
	WaitForReceipt bool    `yaml:"waitForReceipt" envconfig:"CHAIN_WAIT_FOR_RECEIPT"`
	RateLimit      int     `yaml:"rateLimit" envconfig:"CHAIN_RATE_LIMIT"`
	BreakerRatio   float64 `yaml:"breakerRatio" envconfig:"CHAIN_BREAKER_RATIO"`
	BreakerMinReqs uint32  `yaml:"breakerMinRequests" envconfig:"CHAIN_BREAKER_MIN_REQUESTS"`
	TxQueueSize    int     `yaml:"txQueueSize" envconfig:"CHAIN_TX_QUEUE_SIZE"`
}

// EnsConfig holds the contract addresses and the registration policy
type EnsConfig struct {
	Registry      string `yaml:"registry" envconfig:"ENS_REGISTRY_ADDRESS"`
	Controller    string `yaml:"controller" envconfig:"ENS_CONTROLLER_ADDRESS"`
	BaseRegistrar string `yaml:"baseRegistrar" envconfig:"ENS_BASE_REGISTRAR_ADDRESS"`
	// ResolverName is the reserved name whose address is the default resolver
	ResolverName string `yaml:"resolverName" envconfig:"ENS_RESOLVER_NAME"`
	// ResolverAddress skips the resolver lookup when set
	ResolverAddress    string `yaml:"resolverAddress" envconfig:"ENS_RESOLVER_ADDRESS"`
	AvailabilitySource string `yaml:"availabilitySource" envconfig:"ENS_AVAILABILITY_SOURCE"`
	VerifyCommitment   bool   `yaml:"verifyCommitment" envconfig:"ENS_VERIFY_COMMITMENT"`
	MinDuration        uint64 `yaml:"minDuration" envconfig:"ENS_MIN_DURATION"`
}

type SubgraphConfig struct {
	Url     string `yaml:"url" envconfig:"SUBGRAPH_URL"`
	Timeout string `yaml:"timeout" envconfig:"SUBGRAPH_TIMEOUT"`
}

type ApiConfig struct {
	Host             string        `yaml:"host" envconfig:"API_HOST"`
	Port             string        `yaml:"port" envconfig:"API_PORT"`
	Username         string        `yaml:"username" envconfig:"API_USERNAME"`
	Password         string        `yaml:"password" envconfig:"API_PASSWORD"`
	HttpReadTimeout  time.Duration `yaml:"httpReadTimeout" envconfig:"API_HTTP_READ_TIMEOUT"`
	HttpWriteTimeout time.Duration `yaml:"httpWriteTimeout" envconfig:"API_HTTP_WRITE_TIMEOUT"`
	HttpIdleTimeout  time.Duration `yaml:"httpIdleTimeout" envconfig:"API_HTTP_IDLE_TIMEOUT"`
	Tls              struct {
		Enabled  bool   `yaml:"enabled" envconfig:"API_TLS_ENABLED"`
		CertFile string `yaml:"certFile" envconfig:"API_TLS_CERT_FILE"`
		KeyFile  string `yaml:"keyFile" envconfig:"API_TLS_KEY_FILE"`
		CaFile   string `yaml:"caFile" envconfig:"API_TLS_CA_FILE"`
	} `yaml:"tls"`
}
