package cmd

type Config struct {
	HTTPPort   string
	LogLevel   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	RedisHost  string
	RedisPort  string

	CdekBaseURL         string
	DellinBaseURL       string
	DellinTerminalsPath string
	PecomCalcURL        string
	PecomTownsURL       string
	DadataBaseURL       string
	DadataToken         string
	DadataSecret        string
}
