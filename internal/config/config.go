package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                     App                     `mapstructure:",squash"`
	Server                  Server                  `mapstructure:",squash"`
	Database                Database                `mapstructure:",squash"`
	Auth                    Auth                    `mapstructure:",squash"`
	Attribution             Attribution             `mapstructure:",squash"`
	Saturation              Saturation              `mapstructure:",squash"`
	Optimizer               Optimizer               `mapstructure:",squash"`
	AttributionSnapshotSync AttributionSnapshotSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Attribution parametriza o motor de atribuição
type Attribution struct {
	// Meia-vida em dias do decaimento do modelo time_decay
	HalfLifeDays float64 `mapstructure:"attribution_half_life_days"`
}

// Saturation parametriza o ajuste de curvas de resposta
type Saturation struct {
	// Fração do retorno marginal em zero que define o ponto de saturação
	Threshold float64 `mapstructure:"saturation_threshold"`
	// Fator de extrapolação do domínio acima do maior gasto observado
	ExtrapolationFactor float64 `mapstructure:"saturation_extrapolation_factor"`
	// Teto de iterações do ajuste de mínimos quadrados
	MaxFitIterations int `mapstructure:"saturation_max_fit_iterations"`
	// R² mínimo para aceitar o ajuste exponencial
	MinRSquared float64 `mapstructure:"saturation_min_r_squared"`
	// Quantidade de amostras da curva de retorno marginal
	CurveSamples int `mapstructure:"saturation_curve_samples"`
}

// Optimizer parametriza o alocador de orçamento
type Optimizer struct {
	// Quantidade de incrementos em que o orçamento é dividido
	Increments int `mapstructure:"optimizer_increments"`
	// Valor mínimo de um incremento, na unidade monetária da entrada
	MinIncrement float64 `mapstructure:"optimizer_min_increment"`
	// Teto de passos do loop de water-filling
	MaxIterations int `mapstructure:"optimizer_max_iterations"`
	// Fração do gasto atual acima da qual a recomendação vira prioridade alta
	HighPriorityChangeRatio float64 `mapstructure:"optimizer_high_priority_change_ratio"`
	// Fração do gasto atual acima da qual a recomendação vira prioridade média
	MediumPriorityChangeRatio float64 `mapstructure:"optimizer_medium_priority_change_ratio"`
}

// AttributionSnapshotSync parametriza o agendador de snapshots de atribuição
type AttributionSnapshotSync struct {
	CronSchedule string `mapstructure:"attribution_snapshot_sync_cron"`
	LookbackDays int    `mapstructure:"attribution_snapshot_sync_lookback_days"`
	Enabled      bool   `mapstructure:"attribution_snapshot_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/mmm")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("ATTRIBUTION_HALF_LIFE_DAYS", 7.0)

	viper.SetDefault("SATURATION_THRESHOLD", 0.2)
	viper.SetDefault("SATURATION_EXTRAPOLATION_FACTOR", 2.0)
	viper.SetDefault("SATURATION_MAX_FIT_ITERATIONS", 200)
	viper.SetDefault("SATURATION_MIN_R_SQUARED", 0.1)
	viper.SetDefault("SATURATION_CURVE_SAMPLES", 20)

	viper.SetDefault("OPTIMIZER_INCREMENTS", 1000)
	viper.SetDefault("OPTIMIZER_MIN_INCREMENT", 1.0)
	viper.SetDefault("OPTIMIZER_MAX_ITERATIONS", 1000)
	viper.SetDefault("OPTIMIZER_HIGH_PRIORITY_CHANGE_RATIO", 0.2)
	viper.SetDefault("OPTIMIZER_MEDIUM_PRIORITY_CHANGE_RATIO", 0.1)

	viper.SetDefault("ATTRIBUTION_SNAPSHOT_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("ATTRIBUTION_SNAPSHOT_SYNC_LOOKBACK_DAYS", 30)
	viper.SetDefault("ATTRIBUTION_SNAPSHOT_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
