package execute

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ashwinyue/osint-framework/internal/model"
)

// commandTemplate 命令行工具的安装与用法模板，{name} 由参数替换
type commandTemplate struct {
	install string
	usage   string
}

var cliTemplates = map[string]commandTemplate{
	"sherlock":     {install: "pip install sherlock-project", usage: "sherlock {username}"},
	"theharvester": {install: "pip install theHarvester", usage: "theHarvester -d {domain} -b all"},
	"recon-ng":     {install: "pip install recon-ng", usage: "recon-ng -w {workspace}"},
	"spiderfoot":   {install: "pip install spiderfoot", usage: "spiderfoot -s {target}"},
	"amass":        {install: "go install -v github.com/owasp-amass/amass/v4/...@master", usage: "amass enum -d {domain}"},
	"subfinder":    {install: "go install -v github.com/projectdiscovery/subfinder/v2/cmd/subfinder@latest", usage: "subfinder -d {domain}"},
	"nmap":         {install: "apt-get install nmap", usage: "nmap -sV {target}"},
	"holehe":       {install: "pip install holehe", usage: "holehe {email}"},
	"phoneinfoga":  {install: "go install github.com/sundowndev/phoneinfoga/v2@latest", usage: "phoneinfoga scan -n {number}"},
	"sublist3r":    {install: "pip install sublist3r", usage: "sublist3r -d {domain}"},
	"maigret":      {install: "pip install maigret", usage: "maigret {username}"},
}

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// lookupTemplate 按工具名（忽略大小写与空白）查找，再退回工具 ID
func lookupTemplate(tool *model.Tool) (commandTemplate, bool) {
	for _, key := range []string{templateKey(tool.Name), templateKey(tool.ID)} {
		if tpl, ok := cliTemplates[key]; ok {
			return tpl, true
		}
	}
	return commandTemplate{}, false
}

func templateKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// render 替换占位符，缺失的参数渲染为 <name>
func render(tpl string, params Parameters) string {
	return placeholder.ReplaceAllStringFunc(tpl, func(m string) string {
		name := m[1 : len(m)-1]
		if v := params.String(name); v != "" {
			return v
		}
		return "<" + name + ">"
	})
}

func cliResult(tool *model.Tool, params Parameters) *model.ExecutionResult {
	res := &model.ExecutionResult{
		ToolID: tool.ID,
		Name:   tool.Name,
		Type:   model.ToolTypeCLI,
		URL:    tool.URL,
	}
	tpl, ok := lookupTemplate(tool)
	if !ok {
		doc := fmt.Sprintf("See documentation at %s", tool.URL)
		res.InstallCommand = doc
		res.UsageCommand = doc
		res.Message = fmt.Sprintf("%s is a command-line tool; no usage template is available", tool.Name)
		return res
	}
	res.InstallCommand = tpl.install
	res.UsageCommand = render(tpl.usage, params)
	res.Message = fmt.Sprintf("%s is a command-line tool; run the command locally", tool.Name)
	return res
}
