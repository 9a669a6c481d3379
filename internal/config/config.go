// Package config fornece as estruturas e a função de carga da
// configuração do agente de sincronização.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config estrutura geral com as configurações do agente.
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	API             `yaml:"api"`
	LocalStore      `yaml:"local_store"`
	RedisConnection `yaml:"redis_connection"`
	DiagServer      `yaml:"diag_server"`
	Reminder        `yaml:"reminder"`
	Credenciais     `yaml:"credenciais"`
}

// API estrutura para o cliente da API remota.
type API struct {
	BaseURL   string        `yaml:"base_url" env:"VACAFACIL_API_URL" env-default:"https://api.vacafacil.com.br/api/v1"`
	Timeout   time.Duration `yaml:"timeout" env-default:"10s"`
	RateLimit float64       `yaml:"rate_limit" env-default:"5"`
	RateBurst int           `yaml:"rate_burst" env-default:"10"`
}

// LocalStore estrutura para o espelho local de snapshots.
type LocalStore struct {
	Driver string `yaml:"driver" env-default:"sqlite"` // sqlite ou redis
	Path   string `yaml:"path" env-default:"vacafacil.db"`
}

// RedisConnection estrutura para a conexão opcional com redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// DiagServer estrutura para o servidor de diagnóstico.
type DiagServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8090"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Reminder estrutura para o agendador de lembretes.
type Reminder struct {
	Interval time.Duration `yaml:"interval" env-default:"12h"`
	Window   time.Duration `yaml:"window" env-default:"48h"`
}

// Credenciais do agente headless; quando ausentes o agente opera
// anônimo servindo apenas os snapshots locais.
type Credenciais struct {
	Email string `yaml:"email" env:"VACAFACIL_EMAIL"`
	Senha string `yaml:"senha" env:"VACAFACIL_SENHA"`
}

// MustLoad carrega a configuração a partir do arquivo apontado por
// CONFIG_PATH, encerrando o processo em caso de falha.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"API:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"  RateLimit: %.1f\n"+
			"  RateBurst: %d\n"+
			"LocalStore:\n"+
			"  Driver: %s\n"+
			"  Path: %s\n"+
			"DiagServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Reminder:\n"+
			"  Interval: %s\n"+
			"  Window: %s\n",
		c.Env,
		c.BaseURL,
		c.API.Timeout,
		c.RateLimit,
		c.RateBurst,
		c.Driver,
		c.Path,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Interval,
		c.Window,
	)
}
