package config

type Config struct {
	Corpus CorpusConfig
	Check  CheckConfig
	HMM    HMMConfig
	Freq   FreqConfig
	Redis  RedisConfig
	DB     PostgresConfig
	Mongo  MongoConfig
	API    APIConfig
}

type CorpusConfig struct {
	NormalizeNFC bool
	DropTags     []string
}

type CheckConfig struct {
	AllowedTags []string
}

type HMMConfig struct {
	States     []string
	SkipStates []string
}

type FreqConfig struct {
	BandSize     int
	MinCount     int64
	DedupeFilter string
}

type RedisConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Local    bool
	SSL      bool
}

type MongoConfig struct {
	URI        string
	Local      bool
	DBName     string
	CorpusColl string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	SSL      bool
	Local    bool
	DBName   string
}

type APIConfig struct {
	HTTPAddr  string
	WarmCache bool
}
