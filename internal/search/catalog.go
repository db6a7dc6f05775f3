package search

import "time"

// Site categories.
const (
	CategoryCore           = "core"
	CategoryInfrastructure = "infrastructure"
	CategoryServices       = "services"
	CategorySupport        = "support"
	CategoryLabs           = "labs"
	CategoryPartners       = "partners"
)

// Site statuses.
const (
	StatusOperational = "operational"
	StatusDegraded    = "degraded"
	StatusMaintenance = "maintenance"
	StatusOffline     = "offline"
)

var catalogEpoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultCatalog returns the built-in portal sites. Each call returns a fresh
// slice the caller may modify.
func DefaultCatalog() []Site {
	sites := []Site{
		{
			ID:          "wrld-tech",
			Name:        "WRLD Tech",
			Domain:      "wrld.tech",
			URL:         "https://wrld.tech",
			Description: "Primary technology portal and brand hub for WRLD Inc. Access documentation, APIs, and development resources.",
			Category:    CategoryCore,
			Features:    []string{"Documentation", "API Reference", "Brand Assets", "Developer Tools"},
			Tags:        []string{"tech", "documentation", "api", "brand", "development"},
		},
		{
			ID:          "wrld-host",
			Name:        "WRLD Host",
			Domain:      "wrld.host",
			URL:         "https://wrld.host",
			Description: "Enterprise-grade hosting and infrastructure services. Domain management, cloud computing, and managed solutions.",
			Category:    CategoryInfrastructure,
			Features:    []string{"Web Hosting", "Domain Registration", "Cloud VPS", "Managed Services"},
			Tags:        []string{"hosting", "domains", "cloud", "infrastructure", "vps"},
		},
		{
			ID:          "wrld-ai",
			Name:        "WRLD AI",
			Domain:      "wrld.ai",
			URL:         "https://wrld.ai",
			Description: "Artificial intelligence and machine learning platform. AI tools, models, and integration services.",
			Category:    CategoryServices,
			Features:    []string{"AI Models", "ML APIs", "Custom Training", "AI Assistants"},
			Tags:        []string{"ai", "machine-learning", "models", "automation", "neural"},
		},
		{
			ID:          "wrld-help",
			Name:        "WRLD Help",
			Domain:      "help.wrld.tech",
			URL:         "https://help.wrld.tech",
			Description: "Comprehensive help center and knowledge base. Tutorials, guides, and troubleshooting resources.",
			Category:    CategorySupport,
			Features:    []string{"Knowledge Base", "Tutorials", "FAQs", "Video Guides"},
			Tags:        []string{"help", "support", "documentation", "tutorials", "guides"},
		},
		{
			ID:          "wrld-support",
			Name:        "WRLD Support",
			Domain:      "wrld.support",
			URL:         "https://wrld.support",
			Description: "Direct support portal for WRLD services. Submit tickets, live chat, and priority assistance.",
			Category:    CategorySupport,
			Features:    []string{"Ticket System", "Live Chat", "Phone Support", "Priority Queue"},
			Tags:        []string{"support", "tickets", "chat", "assistance", "help"},
		},
		{
			ID:          "wrld-status",
			Name:        "WRLD Status",
			Domain:      "status.wrld.host",
			URL:         "https://status.wrld.host",
			Description: "Real-time service status and incident reports. Monitor uptime, performance, and scheduled maintenance.",
			Category:    CategoryInfrastructure,
			Features:    []string{"Uptime Monitoring", "Incident Reports", "Status History", "Subscriptions"},
			Tags:        []string{"status", "uptime", "monitoring", "incidents", "health"},
		},
		{
			ID:          "ipfs-wrld",
			Name:        "WRLD IPFS",
			Domain:      "ipfs.wrld.tech",
			URL:         "https://ipfs.wrld.tech",
			Description: "Decentralized IPFS gateway powered by Cloudflare. Access distributed web content with low latency.",
			Category:    CategoryInfrastructure,
			Features:    []string{"IPFS Gateway", "IPNS Resolution", "Content Pinning", "Global CDN"},
			Tags:        []string{"ipfs", "decentralized", "web3", "gateway", "distributed"},
		},
		{
			ID:          "wrld-domains",
			Name:        "WRLD Domains",
			Domain:      "wrld.domains",
			URL:         "https://wrld.domains",
			Description: "Premium domain registration and management. Search, register, and configure domain names.",
			Category:    CategoryServices,
			Features:    []string{"Domain Search", "Registration", "DNS Management", "WHOIS Privacy"},
			Tags:        []string{"domains", "registration", "dns", "whois", "tld"},
		},
		{
			ID:          "wrld-labs",
			Name:        "WRLD Labs",
			Domain:      "labs.wrld.tech",
			URL:         "https://labs.wrld.tech",
			Description: "Experimental projects and beta features. Test new technologies and provide feedback.",
			Category:    CategoryLabs,
			Features:    []string{"Beta Features", "Experiments", "Early Access", "Feedback Portal"},
			Tags:        []string{"labs", "beta", "experimental", "preview", "testing"},
		},
		{
			ID:          "wrld-docs",
			Name:        "WRLD Docs",
			Domain:      "docs.wrld.tech",
			URL:         "https://docs.wrld.tech",
			Description: "Technical documentation and API references. Comprehensive guides for all WRLD services.",
			Category:    CategoryCore,
			Features:    []string{"API Docs", "Code Examples", "SDKs", "Integration Guides"},
			Tags:        []string{"documentation", "api", "reference", "guides", "sdk"},
		},
		{
			ID:          "wrld-cloud",
			Name:        "WRLD Cloud",
			Domain:      "cloud.wrld.host",
			URL:         "https://cloud.wrld.host",
			Description: "Cloud computing and infrastructure platform. Deploy, scale, and manage applications globally.",
			Category:    CategoryInfrastructure,
			Features:    []string{"Compute", "Storage", "Networking", "Kubernetes"},
			Tags:        []string{"cloud", "compute", "storage", "kubernetes", "infrastructure"},
		},
		{
			ID:          "wrld-mail",
			Name:        "WRLD Mail",
			Domain:      "mail.wrld.host",
			URL:         "https://mail.wrld.host",
			Description: "Professional email hosting and collaboration. Secure email with custom domains and advanced features.",
			Category:    CategoryServices,
			Features:    []string{"Custom Domains", "Spam Protection", "Encryption", "Collaboration"},
			Tags:        []string{"email", "mail", "collaboration", "communication", "business"},
		},
		{
			ID:          "wrld-coolify",
			Name:        "Coolify",
			Domain:      "coolify.wrld.host",
			URL:         "https://coolify.wrld.host",
			Description: "Self-hosted PaaS for deploying applications. Heroku/Netlify alternative with full control.",
			Category:    CategoryInfrastructure,
			Features:    []string{"Auto Deploy", "Docker Support", "Database Management", "SSL Certificates"},
			Tags:        []string{"coolify", "paas", "deployment", "docker", "heroku-alternative"},
		},
		{
			ID:          "partner-cloudflare",
			Name:        "Cloudflare",
			Domain:      "cloudflare.com",
			URL:         "https://dash.cloudflare.com",
			Description: "Cloudflare partner for CDN, security, and edge computing. DNS, DDoS protection, and Workers.",
			Category:    CategoryPartners,
			Features:    []string{"CDN", "DDoS Protection", "Workers", "DNS"},
			Tags:        []string{"cloudflare", "cdn", "security", "edge", "dns"},
		},
	}

	for i := range sites {
		sites[i].Status = StatusOperational
		sites[i].UpdatedAt = catalogEpoch.Add(time.Duration(i) * time.Hour)
	}

	return sites
}
