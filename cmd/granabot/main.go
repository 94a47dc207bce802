package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"

	"github.com/lfreitas/granabot/pkg/agent"
	"github.com/lfreitas/granabot/pkg/channels/telegram"
	"github.com/lfreitas/granabot/pkg/config"
	"github.com/lfreitas/granabot/pkg/database"
	"github.com/lfreitas/granabot/pkg/logger"
	"github.com/lfreitas/granabot/pkg/orchestrator"
	"github.com/lfreitas/granabot/pkg/providers"
	"github.com/lfreitas/granabot/pkg/search"
	"github.com/lfreitas/granabot/pkg/session"
	"github.com/lfreitas/granabot/pkg/tools"
)

const startupBanner = `
🎉 **ASSISTENTE FINANCEIRO INICIALIZADO COM SUCESSO!**

🚀 **CAPACIDADES:**
💰 Cálculos de Imposto de Renda brasileiro
📈 Cálculos financeiros (juros compostos, simples, porcentagem)
📚 Pesquisa de artigos científicos (arXiv)
🌐 Busca de informações atuais (web)
🧠 Conhecimento geral (matemática, ciências, tecnologia)

💡 **EXEMPLOS DE USO:**
• "Como calcular juros compostos de R$ 10.000 a 12% por 3 anos?"
• "Qual o imposto de renda para R$ 80.000 anuais?"
• "Busque artigos sobre machine learning"
• "O que é blockchain e como funciona?"

🚪 Digite 'sair' para encerrar
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erro de configuração: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Provedores de LLM na ordem de fallback
	groq := providers.NewGroqProvider(
		cfg.GroqAPIKey,
		cfg.GroqBaseURL,
		append([]string{cfg.GroqModel}, cfg.GroqFallback...),
		cfg.LLMTimeout,
	)
	llmProviders := []providers.LLMProvider{groq}
	if cfg.AnthropicAPIKey != "" {
		llmProviders = append(llmProviders,
			providers.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.LLMTimeout))
		logger.InfoC("main", "Provedor Anthropic habilitado como fallback")
	}

	// Clientes de busca
	arxiv := search.NewArxivClient(30 * time.Second)
	tavily := search.NewTavilyClient(cfg.TavilyAPIKey, 30*time.Second)

	// Registro de ferramentas do agente
	registry := tools.NewRegistry()
	registry.Register(tools.NewIncomeTaxTool())
	registry.Register(tools.NewFinanceTool())
	registry.Register(tools.NewArxivTool(arxiv))
	registry.Register(tools.NewWebSearchTool(tavily))

	// Persistência opcional de histórico
	var store database.HistoryStore
	if cfg.DatabaseURL != "" {
		pg, err := database.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			logger.WarnC("main", "Banco indisponível, seguindo sem persistência: "+err.Error())
		} else if err := pg.Connect(ctx); err != nil {
			logger.WarnC("main", "Conexão ao banco falhou, seguindo sem persistência: "+err.Error())
		} else {
			store = pg
			defer pg.Close()
		}
	} else if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		sb := database.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey)
		if err := sb.Connect(ctx); err != nil {
			logger.WarnC("main", "Supabase indisponível, seguindo sem persistência: "+err.Error())
		} else {
			store = sb
		}
	}

	sessions := session.NewManager(store)
	loop := agent.NewLoop(llmProviders, registry, sessions, cfg.MaxToolIterations)
	orch := orchestrator.New(loop, groq, arxiv, orchestrator.DefaultGate())

	// Canal opcional do Telegram, em paralelo ao console
	if cfg.TelegramBotToken != "" {
		channel, err := telegram.NewChannel(cfg.TelegramBotToken, orch)
		if err != nil {
			logger.WarnC("main", "Telegram desabilitado: "+err.Error())
		} else {
			go func() {
				if err := channel.Run(ctx); err != nil {
					logger.ErrorC("telegram", "Canal encerrou com erro: "+err.Error())
				}
			}()
		}
	}

	fmt.Print(startupBanner)
	if !cfg.HasWebSearch() {
		fmt.Println("⚠️ Busca web desabilitada (TAVILY_API_KEY não configurada)")
	}

	if err := runConsole(ctx, orch); err != nil {
		logger.ErrorC("main", "Console encerrou com erro: "+err.Error())
		os.Exit(1)
	}
}

var exitCommands = map[string]bool{
	"quit": true,
	"exit": true,
	"sair": true,
	"q":    true,
}

// runConsole é a superfície principal: um loop readline que envia cada
// pergunta ao orquestrador e imprime a resposta entre banners.
func runConsole(ctx context.Context, orch *orchestrator.Orchestrator) error {
	rl, err := readline.New("\n💬 Sua pergunta: ")
	if err != nil {
		return fmt.Errorf("erro ao iniciar o console: %w", err)
	}
	defer rl.Close()

	fmt.Println("\n" + strings.Repeat("=", 50))

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n👋 **Sessão encerrada.**")
			return nil
		default:
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			fmt.Println("\n👋 **Sessão encerrada pelo usuário.**")
			return nil
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			fmt.Println("⚠️ Por favor, digite uma pergunta.")
			continue
		}
		if exitCommands[strings.ToLower(input)] {
			fmt.Println("\n👋 **Até logo! Obrigado por usar o assistente!**")
			return nil
		}

		fmt.Println("\n🤖 **Processando sua pergunta...**")
		fmt.Println(strings.Repeat("-", 40))

		response := orch.Handle(ctx, input, "cli:direct")

		fmt.Println("\n📋 **Resposta:**")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println(response)
		fmt.Println(strings.Repeat("=", 50))
	}
}
