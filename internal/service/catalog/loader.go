package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"github.com/ashwinyue/osint-framework/internal/logger"
	"github.com/ashwinyue/osint-framework/internal/model"
)

const (
	// SourceFallback 使用内置工具集时的来源标识
	SourceFallback = "fallback"

	defaultCategory    = "Uncategorized"
	defaultSubcategory = "General"
)

var errToolsNotList = errors.New("tools is not a list")

// masterFile tools-master.json 的结构
type masterFile struct {
	Tools      json.RawMessage `json:"tools"`
	Categories json.RawMessage `json:"categories"`
}

// extraFile catalog.extraDir 下的 TOML 文件结构
type extraFile struct {
	Tools []*model.Tool `toml:"tools"`
}

// Loader 目录加载器
type Loader struct {
	logger *zap.Logger
}

// NewLoader 创建目录加载器
func NewLoader(l *zap.Logger) *Loader {
	return &Loader{logger: logger.OrNop(l).Named("catalog")}
}

// Load 读取目录文件并构建快照，失败时退回内置工具集，从不返回错误
// extraDir 非空时合并其中的 *.toml 工具定义
func (l *Loader) Load(path, extraDir string) *Catalog {
	tools, categories, err := l.readMaster(path)
	degraded := false
	source := path
	if err != nil {
		l.logger.Warn("catalog unavailable, using fallback tools",
			zap.String("path", path), zap.Error(err))
		tools, categories = fallbackTools(), nil
		degraded = true
		source = SourceFallback
	}

	if extraDir != "" {
		extra := l.readExtraDir(extraDir)
		if len(extra) > 0 {
			tools = append(tools, extra...)
			// 额外工具会改变计数，必须重新统计
			categories = nil
		}
	}

	c := newCatalog(l.normalize(tools), categories)
	c.Degraded = degraded
	c.Source = source

	l.logger.Info("catalog loaded",
		zap.String("source", source),
		zap.Int("tools", c.Len()),
		zap.Int("categories", len(c.Categories)),
		zap.Bool("degraded", degraded))
	return c
}

// readMaster 解析目录文件，JSON 损坏时先尝试修复
func (l *Loader) readMaster(path string) ([]*model.Tool, model.CategoryIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog: %w", err)
	}

	var mf masterFile
	if err := json.Unmarshal(data, &mf); err != nil {
		repaired, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return nil, nil, fmt.Errorf("parse catalog: %w", err)
		}
		mf = masterFile{}
		if err := json.Unmarshal([]byte(repaired), &mf); err != nil {
			return nil, nil, fmt.Errorf("parse repaired catalog: %w", err)
		}
		l.logger.Warn("catalog json was malformed and has been repaired", zap.String("path", path))
	}

	raw := bytes.TrimSpace(mf.Tools)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, nil, errToolsNotList
	}
	var tools []*model.Tool
	if err := json.Unmarshal(raw, &tools); err != nil {
		return nil, nil, fmt.Errorf("parse tools: %w", err)
	}
	return tools, l.decodeCategories(mf.Categories), nil
}

// decodeCategories 解析文件自带的分类信息，无法使用时返回 nil 由 BuildIndex 重新生成
func (l *Loader) decodeCategories(raw json.RawMessage) model.CategoryIndex {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var index model.CategoryIndex
	if err := json.Unmarshal(raw, &index); err != nil {
		l.logger.Warn("ignore malformed categories in catalog", zap.Error(err))
		return nil
	}
	if len(index) == 0 {
		return nil
	}
	return index
}

// readExtraDir 读取目录下全部 TOML 工具定义，按文件名顺序合并
func (l *Loader) readExtraDir(dir string) []*model.Tool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Warn("extra catalog dir unreadable", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var tools []*model.Tool
	for _, name := range names {
		path := filepath.Join(dir, name)
		var ef extraFile
		if _, err := toml.DecodeFile(path, &ef); err != nil {
			l.logger.Warn("skip extra catalog file", zap.String("file", path), zap.Error(err))
			continue
		}
		tools = append(tools, ef.Tools...)
	}
	return tools
}

// normalize 补全字段、按 URL 去重（保留首次出现）并分配工具 ID
func (l *Loader) normalize(in []*model.Tool) []*model.Tool {
	seenURL := make(map[string]bool, len(in))
	seenID := make(map[string]bool, len(in))
	out := make([]*model.Tool, 0, len(in))

	for _, src := range in {
		if src == nil || strings.TrimSpace(src.Name) == "" || strings.TrimSpace(src.URL) == "" {
			continue
		}
		t := *src
		t.Name = strings.TrimSpace(t.Name)
		t.URL = NormalizeURL(t.URL)
		if seenURL[t.URL] {
			continue
		}
		seenURL[t.URL] = true

		if t.Category = strings.TrimSpace(t.Category); t.Category == "" {
			t.Category = defaultCategory
		}
		if t.Subcategory = strings.TrimSpace(t.Subcategory); t.Subcategory == "" {
			t.Subcategory = defaultSubcategory
		}
		typ, ok := model.ParseToolType(string(t.Type))
		if !ok && t.Type != "" {
			l.logger.Warn("unknown tool type, treating as web",
				zap.String("tool", t.Name), zap.String("type", string(t.Type)))
		}
		t.Type = typ
		t.Tags = dedupTags(t.Tags)

		id := strings.TrimSpace(t.ID)
		if id == "" {
			id = ToolID(t.Name, t.URL)
		}
		t.ID = uniqueID(id, t.Category, seenID)

		out = append(out, &t)
	}
	return out
}

// uniqueID 同一分类中 ID 冲突时追加 -2、-3 ...
func uniqueID(id, scope string, seen map[string]bool) string {
	candidate := id
	for n := 2; seen[scope+"\x00"+candidate]; n++ {
		candidate = id + "-" + strconv.Itoa(n)
	}
	seen[scope+"\x00"+candidate] = true
	return candidate
}

func dedupTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}
