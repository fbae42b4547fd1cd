package search

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Data pools for the synthetic generator.
var (
	investorCompanies = []string{
		"Sequoia Capital", "Andreessen Horowitz", "First Round Capital", "Accel Partners",
		"Lightspeed Venture Partners", "Bessemer Venture Partners", "Index Ventures",
		"GGV Capital", "Kaszek Ventures", "Nordic Capital", "Balderton Capital",
		"General Catalyst", "Greylock Partners", "Kleiner Perkins", "NEA", "Insight Partners",
	}

	startupNames = []string{
		"NeuralFlow AI", "HealthTech Solutions", "GreenEnergy Innovations", "FinTech Berlin",
		"EdTech India", "CleanTech Nordic", "RoboTech Japan", "AgriTech MENA",
		"RetailTech Solutions", "CyberSec Pro", "DataFlow Systems", "CloudOps Platform",
		"MedTech Innovations", "EcoSmart Solutions", "QuantumCompute", "BioAnalytics Pro",
	}

	peopleNames = []string{
		"Sarah Chen", "Michael Rodriguez", "Emily Watson", "James Thompson", "Priya Sharma",
		"Lars Andersen", "Chen Wei", "Maria Santos", "Robert Kim", "Sophie Laurent",
		"Alex Thompson", "Maria Garcia", "David Kim", "Sophie Mueller", "Raj Patel",
		"Emma Johnson", "Yuki Tanaka", "Ahmed Hassan", "Isabella Rodriguez", "Thomas Anderson",
	}

	allLocations = []string{
		"San Francisco, United States", "New York, United States", "London, United Kingdom",
		"Berlin, Germany", "Paris, France", "Stockholm, Sweden", "Amsterdam, Netherlands",
		"Singapore", "Hong Kong", "Tokyo, Japan", "Seoul, South Korea", "Sydney, Australia",
		"Toronto, Canada", "Tel Aviv, Israel", "Bangalore, India", "São Paulo, Brazil",
	}

	allIndustries = []string{"technology", "healthcare", "finance", "energy", "education", "retail"}

	recordSources = []string{"Crunchbase", "PitchBook", "CB Insights", "TechCrunch", "AngelList", "LinkedIn"}

	investorTitles = []string{"Partner", "General Partner", "Principal", "Managing Partner", "Investment Director"}
	founderTitles  = []string{"CEO & Founder", "Co-Founder & CTO", "Founder", "CEO", "Co-Founder & CEO"}

	investorBackgrounds = []string{
		"Former entrepreneur with two successful exits",
		"Ex-McKinsey consultant with 10+ years in venture capital",
		"Former Goldman Sachs MD with deep industry expertise",
		"PhD from Stanford with technical background",
		"Former Google executive with product expertise",
	}
	founderBackgrounds = []string{
		"Former VP of Engineering at Salesforce",
		"Ex-Google product manager with deep technical expertise",
		"MIT PhD with research background",
		"Former Microsoft engineer",
		"Stanford MBA with consulting background",
	}

	investmentRanges = []string{"$500K - $5M", "$1M - $10M", "$2M - $20M", "$5M - $50M", "$10M - $100M"}
	investorStages   = []string{"Seed to Series A", "Series A to Series C", "Seed to Series B", "Pre-seed to Series A", "Series B to IPO"}
	investorAmounts  = []string{"$50M", "$100M", "$250M", "$500M", "$1B", "$2B"}
	startupStages    = []string{"Pre-seed", "Seed", "Series A", "Series B", "Series C"}
	startupAmounts   = []string{"$500K", "$1M", "$3M", "$5M", "$10M", "$15M", "$25M", "$50M"}
	employeeCounts   = []string{"5-10", "10-25", "25-50", "50-100", "100-250"}
	foundedYears     = []string{"2020", "2021", "2022", "2023", "2024"}
)

// SyntheticProvider generates plausible results when no real search
// integration is configured. The records are sampled pseudo-randomly from
// fixed pools; they look real but are not.
type SyntheticProvider struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSyntheticProvider creates a generator seeded from the clock.
func NewSyntheticProvider() *SyntheticProvider {
	return &SyntheticProvider{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *SyntheticProvider) Name() string { return "synthetic" }

func (p *SyntheticProvider) Search(_ context.Context, q Query) ([]Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	locations := allLocations
	if q.Location != "" && q.Location != "all" {
		locations = []string{q.Location}
	}
	industries := allIndustries
	if q.Industry != "" && q.Industry != "all" {
		industries = []string{q.Industry}
	}

	n := 8 + p.rnd.Intn(8) // 8 to 15 records
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		industry := pick(p.rnd, industries)
		location := pick(p.rnd, locations)
		name := pick(p.rnd, peopleNames)
		source := pick(p.rnd, recordSources)

		if q.Type == TypeInvestor {
			company := pick(p.rnd, investorCompanies)
			title := pick(p.rnd, investorTitles)
			results = append(results, Result{
				ID:              fmt.Sprintf("web-inv-%d", i+1),
				Name:            name,
				Company:         company,
				Title:           title,
				Location:        location,
				Industry:        industry,
				Bio:             p.investorBio(company, title, industry),
				Website:         websiteFor(company),
				LinkedIn:        linkedinFor(name),
				Source:          source,
				Type:            TypeInvestor,
				InvestmentRange: pick(p.rnd, investmentRanges),
				PortfolioSize:   10 + p.rnd.Intn(80),
				FundingStage:    pick(p.rnd, investorStages),
				FundingAmount:   pick(p.rnd, investorAmounts),
			})
			continue
		}

		company := pick(p.rnd, startupNames)
		results = append(results, Result{
			ID:            fmt.Sprintf("web-start-%d", i+1),
			Name:          name,
			Company:       company,
			Title:         pick(p.rnd, founderTitles),
			Location:      location,
			Industry:      industry,
			Bio:           p.startupBio(company, industry),
			Website:       websiteFor(company),
			LinkedIn:      linkedinFor(name),
			Source:        source,
			Type:          TypeStartup,
			FundingStage:  pick(p.rnd, startupStages),
			FundingAmount: pick(p.rnd, startupAmounts),
			Employees:     pick(p.rnd, employeeCounts),
			Founded:       pick(p.rnd, foundedYears),
		})
	}
	return results, nil
}

func (p *SyntheticProvider) investorBio(company, title, industry string) string {
	return fmt.Sprintf("%s at %s focusing on %s. %s. Active investor with strong track record of successful exits and portfolio company support.",
		title, company, investorFocus(industry), pick(p.rnd, investorBackgrounds))
}

func (p *SyntheticProvider) startupBio(company, industry string) string {
	return fmt.Sprintf("Building %s at %s. %s. Backed by top-tier VCs with strong traction and growing customer base.",
		startupFocus(industry), company, pick(p.rnd, founderBackgrounds))
}

func investorFocus(industry string) string {
	switch industry {
	case "technology":
		return "AI and enterprise software"
	case "healthcare":
		return "digital health and biotech"
	case "finance":
		return "fintech and crypto"
	case "energy":
		return "cleantech and sustainability"
	default:
		return "early-stage companies"
	}
}

func startupFocus(industry string) string {
	switch industry {
	case "technology":
		return "AI-powered automation solutions"
	case "healthcare":
		return "digital health and diagnostics"
	case "finance":
		return "next-gen payment infrastructure"
	case "energy":
		return "sustainable energy solutions"
	default:
		return "innovative technology solutions"
	}
}

func websiteFor(company string) string {
	return "https://" + strings.ToLower(strings.ReplaceAll(company, " ", "")) + ".com"
}

func linkedinFor(name string) string {
	return "https://linkedin.com/in/" + strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

func pick(rnd *rand.Rand, pool []string) string {
	return pool[rnd.Intn(len(pool))]
}
