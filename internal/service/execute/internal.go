package execute

import (
	"fmt"
	"net/mail"
	"net/netip"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/ashwinyue/osint-framework/internal/model"
)

// InternalKind 内置分析种类，集合是封闭的
type InternalKind int

const (
	KindDomain InternalKind = iota + 1
	KindIP
	KindSSL
	KindEmail
	KindUsername
	KindAIPattern
)

// StatusPending 尚未接入外部数据源的字段
const StatusPending = "pending"

var internalKinds = map[string]InternalKind{
	"domainAnalysis":       KindDomain,
	"ipAnalysis":           KindIP,
	"sslAnalysis":          KindSSL,
	"emailAnalysis":        KindEmail,
	"usernameSearch":       KindUsername,
	"aiPatternRecognition": KindAIPattern,
}

// KindOf 由工具 ID 确定内置分析种类
func KindOf(toolID string) (InternalKind, bool) {
	k, ok := internalKinds[toolID]
	return k, ok
}

func (k InternalKind) String() string {
	switch k {
	case KindDomain:
		return "domain"
	case KindIP:
		return "ip"
	case KindSSL:
		return "ssl"
	case KindEmail:
		return "email"
	case KindUsername:
		return "username"
	case KindAIPattern:
		return "ai-pattern"
	default:
		return "unknown"
	}
}

// targetKeys 各种类接受的目标参数名，target 为通用别名
func (k InternalKind) targetKeys() []string {
	switch k {
	case KindDomain:
		return []string{"domain", "target"}
	case KindIP:
		return []string{"ip", "target"}
	case KindSSL:
		return []string{"host", "domain", "target"}
	case KindEmail:
		return []string{"email", "target"}
	case KindUsername:
		return []string{"username", "target"}
	case KindAIPattern:
		return []string{"data", "query", "target"}
	default:
		return []string{"target"}
	}
}

// Lookup 尚未接入的外部查询
type Lookup struct {
	Status string `json:"status"`
	Source string `json:"source,omitempty"`
}

func pending(source string) Lookup {
	return Lookup{Status: StatusPending, Source: source}
}

// DomainAnalysis 域名结构分析
type DomainAnalysis struct {
	Domain            string `json:"domain"`
	RegistrableDomain string `json:"registrableDomain"`
	PublicSuffix      string `json:"publicSuffix"`
	Subdomain         string `json:"subdomain,omitempty"`
	ICANN             bool   `json:"icann"`
	Labels            int    `json:"labels"`
	WHOIS             Lookup `json:"whois"`
	DNS               Lookup `json:"dns"`
}

// IPAnalysis IP 地址分类
type IPAnalysis struct {
	IP            string `json:"ip"`
	Version       int    `json:"version"`
	Private       bool   `json:"private"`
	Loopback      bool   `json:"loopback"`
	Multicast     bool   `json:"multicast"`
	LinkLocal     bool   `json:"linkLocal"`
	GlobalUnicast bool   `json:"globalUnicast"`
	Unspecified   bool   `json:"unspecified"`
	Geolocation   Lookup `json:"geolocation"`
	ReverseDNS    Lookup `json:"reverseDns"`
}

// SSLAnalysis 证书分析占位
type SSLAnalysis struct {
	Host        string `json:"host"`
	Certificate Lookup `json:"certificate"`
}

// EmailAnalysis 邮箱分析
type EmailAnalysis struct {
	Email    string `json:"email"`
	Local    string `json:"local"`
	Domain   string `json:"domain"`
	Breaches Lookup `json:"breaches"`
	MX       Lookup `json:"mx"`
}

// UsernameAnalysis 用户名搜索占位
type UsernameAnalysis struct {
	Username  string `json:"username"`
	Platforms Lookup `json:"platforms"`
}

// PatternAnalysis AI 模式识别占位
type PatternAnalysis struct {
	Input  string `json:"input"`
	Status string `json:"status"`
}

func internalResult(tool *model.Tool, params Parameters) (*model.ExecutionResult, error) {
	kind, ok := KindOf(tool.ID)
	if !ok {
		return nil, fmt.Errorf("%w: internal tool %q", model.ErrNotImplemented, tool.ID)
	}
	keys := kind.targetKeys()
	target := params.first(keys...)
	if target == "" {
		return nil, fmt.Errorf("%w: %s required", model.ErrValidation, keys[0])
	}

	var (
		analysis any
		err      error
	)
	switch kind {
	case KindDomain:
		analysis, err = analyzeDomain(target)
	case KindIP:
		analysis, err = analyzeIP(target)
	case KindSSL:
		analysis = &SSLAnalysis{Host: strings.ToLower(target), Certificate: pending("tls")}
	case KindEmail:
		analysis, err = analyzeEmail(target)
	case KindUsername:
		analysis = &UsernameAnalysis{Username: target, Platforms: pending("username-search")}
	case KindAIPattern:
		analysis = &PatternAnalysis{Input: target, Status: StatusPending}
	}
	if err != nil {
		return nil, err
	}

	return &model.ExecutionResult{
		ToolID:   tool.ID,
		Name:     tool.Name,
		Type:     model.ToolTypeInternal,
		URL:      tool.URL,
		Message:  fmt.Sprintf("%s analysis complete", kind),
		Analysis: analysis,
	}, nil
}

func analyzeDomain(target string) (*DomainAnalysis, error) {
	domain := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(target)), ".")
	if i := strings.Index(domain, "://"); i >= 0 {
		domain = domain[i+3:]
	}
	if i := strings.IndexAny(domain, "/:?#"); i >= 0 {
		domain = domain[:i]
	}

	registrable, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid domain %q", model.ErrValidation, target)
	}
	suffix, icann := publicsuffix.PublicSuffix(domain)

	return &DomainAnalysis{
		Domain:            domain,
		RegistrableDomain: registrable,
		PublicSuffix:      suffix,
		Subdomain:         strings.TrimSuffix(strings.TrimSuffix(domain, registrable), "."),
		ICANN:             icann,
		Labels:            len(strings.Split(domain, ".")),
		WHOIS:             pending("whois"),
		DNS:               pending("dns"),
	}, nil
}

func analyzeIP(target string) (*IPAnalysis, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(target))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ip %q", model.ErrValidation, target)
	}
	version := 6
	if addr.Unmap().Is4() {
		version = 4
	}
	return &IPAnalysis{
		IP:            addr.String(),
		Version:       version,
		Private:       addr.IsPrivate(),
		Loopback:      addr.IsLoopback(),
		Multicast:     addr.IsMulticast(),
		LinkLocal:     addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast(),
		GlobalUnicast: addr.IsGlobalUnicast(),
		Unspecified:   addr.IsUnspecified(),
		Geolocation:   pending("geoip"),
		ReverseDNS:    pending("dns"),
	}, nil
}

func analyzeEmail(target string) (*EmailAnalysis, error) {
	parsed, err := mail.ParseAddress(target)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", model.ErrValidation, target)
	}
	at := strings.LastIndex(parsed.Address, "@")
	return &EmailAnalysis{
		Email:    parsed.Address,
		Local:    parsed.Address[:at],
		Domain:   strings.ToLower(parsed.Address[at+1:]),
		Breaches: pending("breach-check"),
		MX:       pending("dns"),
	}, nil
}
