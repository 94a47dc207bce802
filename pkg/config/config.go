// Package config carrega a configuração do assistente a partir de variáveis
// de ambiente (e opcionalmente de um arquivo .env).
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config reúne todas as credenciais e parâmetros de execução.
// GroqAPIKey é a única credencial obrigatória: sem ela o processo
// não inicia (validado em Load, antes de qualquer requisição).
type Config struct {
	GroqAPIKey   string   `env:"GROQ_API_KEY"`
	GroqBaseURL  string   `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqModel    string   `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`
	GroqFallback []string `env:"GROQ_FALLBACK_MODELS" envSeparator:"," envDefault:"llama-3.1-8b-instant"`

	// Provedor secundário opcional, usado quando o Groq falha.
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL" envDefault:"claude-3-5-haiku-latest"`

	// Busca web (opcional). Sem a chave, a ferramenta devolve instruções
	// de configuração em vez de tentar a chamada.
	TavilyAPIKey string `env:"TAVILY_API_KEY"`

	// Canal Telegram opcional; o console continua sendo a superfície padrão.
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`

	// Persistência de histórico (opcional): Postgres direto ou Supabase REST.
	DatabaseURL string `env:"DATABASE_URL"`
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`

	MaxToolIterations int           `env:"MAX_TOOL_ITERATIONS" envDefault:"8"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT" envDefault:"90s"`
	Debug             bool          `env:"DEBUG"`
}

// Load lê .env (se existir) e o ambiente, e valida o mínimo necessário.
func Load() (*Config, error) {
	// Ausência de .env não é erro: em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("erro ao ler variáveis de ambiente: %w", err)
	}

	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY não encontrada: configure no ambiente ou no arquivo .env")
	}
	if cfg.MaxToolIterations < 1 {
		return nil, fmt.Errorf("MAX_TOOL_ITERATIONS deve ser >= 1 (recebido %d)", cfg.MaxToolIterations)
	}

	return cfg, nil
}

// HasWebSearch informa se a busca web está habilitada.
func (c *Config) HasWebSearch() bool { return c.TavilyAPIKey != "" }

// HasDatabase informa se alguma forma de persistência foi configurada.
func (c *Config) HasDatabase() bool { return c.DatabaseURL != "" || c.SupabaseURL != "" }
