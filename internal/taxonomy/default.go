package taxonomy

// Default returns the built-in Portuguese support taxonomy. It mirrors the
// keyword sets the support team curated from real WhatsApp conversations and
// is the baseline when no taxonomy file is supplied.
func Default() *Taxonomy {
	return &Taxonomy{
		Categories: []Category{
			{
				Tag:         "access_issues",
				Keywords:    []string{"não consigo acessar", "problema para acessar", "não entra", "bloqueado", "senha", "login"},
				Description: "Problems with account access, login, passwords",
			},
			{
				Tag:         "technical_issues",
				Keywords:    []string{"não funciona", "erro", "bug", "travando", "não carrega", "problema técnico"},
				Description: "Technical problems with the application or platform",
				Urgent:      true,
			},
			{
				Tag:         "content_issues",
				Keywords:    []string{"conteúdo", "material", "vídeo", "aula", "curso"},
				Description: "Issues related to course content or materials",
			},
			{
				Tag:         "payment_issues",
				Keywords:    []string{"pagamento", "cobrança", "fatura", "cartão", "pix"},
				Description: "Payment and billing related issues",
			},
			{
				Tag:         "refund_requests",
				Keywords:    []string{"reembolso", "devolver", "estorno", "cancelar", "dinheiro de volta"},
				Description: "Refund and cancellation requests",
				Urgent:      true,
			},
			{
				Tag:         "general_support",
				Keywords:    []string{"ajuda", "suporte", "dúvida", "como", "onde"},
				Description: "General support and how-to questions",
			},
		},
		DefaultTag: "general_support",

		RefundReasons: []Category{
			{
				Tag:      "content_quality",
				Keywords: []string{"conteúdo ruim", "não gostei", "esperava mais", "muito básico", "superficial", "não vale", "decepcionante"},
			},
			{
				Tag:      "technical_issues",
				Keywords: []string{"não funciona", "erro", "bug", "travando", "não carrega", "problema técnico", "não consigo acessar"},
			},
			{
				Tag:      "access_problems",
				Keywords: []string{"não consigo entrar", "bloqueado", "senha", "login", "acesso negado", "expirou"},
			},
			{
				Tag:      "financial_issues",
				Keywords: []string{"sem dinheiro", "situação financeira", "desemprego", "não posso pagar", "crise"},
			},
			{
				Tag:      "expectation_mismatch",
				Keywords: []string{"não era isso", "diferente do prometido", "propaganda enganosa", "não é como falaram"},
			},
			{
				Tag:      "time_constraints",
				Keywords: []string{"não tenho tempo", "muito ocupado", "não consigo estudar", "sem tempo"},
			},
			{
				Tag:      "duplicate_purchase",
				Keywords: []string{"comprei duas vezes", "duplicado", "erro na compra", "compra acidental"},
			},
			{
				Tag:      "competitor_influence",
				Keywords: []string{"encontrei mais barato", "outro curso", "melhor opção", "concorrente"},
			},
		},
		UnspecifiedTag: "unspecified",

		Sentiment: Sentiment{
			Positive: []string{"obrigado", "gostei", "bom", "satisfeito", "resolvido", "perfeito"},
			Negative: []string{"irritado", "chateado", "decepcionado", "frustrado", "raiva", "péssimo"},
			Neutral:  []string{"ok", "entendi", "certo", "tudo bem"},
		},

		ResolutionIndicators: []string{
			"obrigado", "obrigada", "resolvido", "funcionou", "consegui",
			"deu certo", "perfeito", "muito obrigado", "valeu", "ok, obrigado",
		},

		RefundIntent: []string{
			"reembolso", "devolver", "estorno", "cancelar", "cancelamento",
			"dinheiro de volta", "quero meu dinheiro", "desfazer compra",
		},

		RetentionPositive: []string{
			"vou continuar", "obrigado pela ajuda", "resolvido", "vou tentar",
			"vou usar", "ok, vou fazer", "muito obrigado",
		},
		RefundInsistence: []string{
			"ainda quero reembolso", "mesmo assim quero cancelar", "não mudei de ideia",
			"quero meu dinheiro", "vou cancelar mesmo",
		},

		SolutionIndicators: []string{
			"para resolver", "solução", "tente", "faça", "acesse", "clique",
			"vá em", "entre em contato", "envie", "verifique", "confirme",
			"procedimento", "passo a passo", "instruções",
		},

		Strategies: []Strategy{
			{Tag: "technical_support", Keywords: []string{"vamos resolver", "suporte técnico", "vou te ajudar", "problema técnico"}},
			{Tag: "content_upgrade", Keywords: []string{"material extra", "bônus", "conteúdo adicional", "acesso premium"}},
			{Tag: "personal_assistance", Keywords: []string{"acompanhamento", "suporte personalizado", "mentoria", "ajuda individual"}},
			{Tag: "flexible_payment", Keywords: []string{"parcelamento", "desconto", "condição especial", "facilitar pagamento"}},
			{Tag: "guarantee_extension", Keywords: []string{"garantia estendida", "mais tempo", "prazo maior"}},
			{Tag: "community_access", Keywords: []string{"grupo vip", "comunidade", "networking", "contatos"}},
			{Tag: "alternative_solution", Keywords: []string{"outro produto", "troca", "migração", "alternativa"}},
		},
	}
}
