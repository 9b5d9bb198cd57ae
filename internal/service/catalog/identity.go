package catalog

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeURL 补全协议、小写主机名并去掉末尾的 /
// 同一目录内以该结果去重
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	// 内置工具使用站内相对路径
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return s
	}
	if !strings.Contains(s, "://") {
		s = "https://" + strings.TrimPrefix(s, "//")
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(s, "/")
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	out := u.String()
	if u.RawQuery == "" && u.Fragment == "" {
		out = strings.TrimSuffix(out, "/")
	}
	return out
}

// Hostname 返回 URL 的小写主机名（去掉 www.）
func Hostname(raw string) string {
	u, err := url.Parse(NormalizeURL(raw))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// ToolID 由名称和主机名生成稳定的工具 ID
// 名称 token 已包含主机标签时不再追加，如 Shodan + shodan.io -> shodan
func ToolID(name, rawURL string) string {
	nameToken := token(name)
	hostToken := token(hostLabel(Hostname(rawURL)))

	switch {
	case nameToken == "":
		return hostToken
	case hostToken == "" || strings.Contains(nameToken, hostToken):
		return nameToken
	default:
		return nameToken + hostToken
	}
}

// hostLabel 取可注册域名去掉公共后缀后的部分，github.com -> github
func hostLabel(host string) string {
	if host == "" {
		return ""
	}
	if net.ParseIP(host) != nil {
		return host
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	suffix, _ := publicsuffix.PublicSuffix(etld1)
	return strings.TrimSuffix(etld1, "."+suffix)
}

// token 只保留小写字母和数字
func token(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
