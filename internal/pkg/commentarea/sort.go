package commentarea

import (
	"context"
	log "log/slog"
	"strings"
)

type SortField string

type SortDirection string

const (
	SortByDate      SortField = "date"
	SortByFirstName SortField = "author_firstname"
	SortByLastName  SortField = "author_lastname"

	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

var allSortFields = []SortField{SortByDate, SortByFirstName, SortByLastName}

// DefaultSort 任何无效或不可用的排序都回落到这里
var DefaultSort = SortFeature{Field: SortByDate, Direction: SortAsc}

// SortFeature 根评论的展示顺序，序列化形式为 <field>_<direction>
type SortFeature struct {
	Field     SortField
	Direction SortDirection
}

func (f SortFeature) String() string {
	return string(f.Field) + "_" + string(f.Direction)
}

func (f SortFeature) Desc() bool {
	return f.Direction == SortDesc
}

// Available 作者姓名排序只对能看到真实作者的查看者开放
func (f SortFeature) Available(anonymized bool) bool {
	if f.Direction != SortAsc && f.Direction != SortDesc {
		return false
	}
	for _, field := range SortableFields(anonymized) {
		if field == f.Field {
			return true
		}
	}
	return false
}

// ParseSortFeature 解析 date_desc、author_lastname_asc 这类值
func ParseSortFeature(value string) (SortFeature, bool) {
	idx := strings.LastIndex(value, "_")
	if idx <= 0 || idx == len(value)-1 {
		return SortFeature{}, false
	}
	f := SortFeature{
		Field:     SortField(value[:idx]),
		Direction: SortDirection(value[idx+1:]),
	}
	if !f.Available(false) {
		return SortFeature{}, false
	}
	return f, true
}

// SortableFields 查看者当前可用的排序字段
func SortableFields(anonymized bool) []SortField {
	if anonymized {
		return []SortField{SortByDate}
	}
	return allSortFields
}

// AvailableFeatures 所有可用字段与两个方向的组合
func AvailableFeatures(anonymized bool) []SortFeature {
	fields := SortableFields(anonymized)
	features := make([]SortFeature, 0, len(fields)*2)
	for _, field := range fields {
		features = append(features,
			SortFeature{Field: field, Direction: SortAsc},
			SortFeature{Field: field, Direction: SortDesc},
		)
	}
	return features
}

// ResolveSort 解析并校验排序值，不合法或当前不可用时静默回落到 DefaultSort
func ResolveSort(value string, anonymized bool) SortFeature {
	f, ok := ParseSortFeature(value)
	if !ok || !f.Available(anonymized) {
		return DefaultSort
	}
	return f
}

// PreferenceStore 用户偏好的键值存储
type PreferenceStore interface {
	GetPreference(ctx context.Context, userID uint64, name string) (string, error)
	SetPreference(ctx context.Context, userID uint64, name string, value string) error
}

// SortPlanner 负责排序偏好的读取与持久化
type SortPlanner struct {
	prefs PreferenceStore
}

func NewSortPlanner(prefs PreferenceStore) *SortPlanner {
	return &SortPlanner{prefs: prefs}
}

// Current 读取查看者保存的排序，读取失败只记录日志
func (p *SortPlanner) Current(ctx context.Context, viewer Viewer, activity Activity) SortFeature {
	value, err := p.prefs.GetPreference(ctx, viewer.UserID, SortPreferenceName)
	if err != nil {
		log.WarnContext(ctx, "load comment sort preference failed", "user_id", viewer.UserID, "err", err)
		return DefaultSort
	}
	return ResolveSort(value, viewer.Anonymized(activity))
}

// Save 保存排序偏好并返回实际生效的值
// 非法或当前不可用的值只对本次请求回落到 DefaultSort，不覆盖已保存的偏好
func (p *SortPlanner) Save(ctx context.Context, viewer Viewer, activity Activity, value string) (SortFeature, error) {
	f, ok := ParseSortFeature(value)
	if !ok || !f.Available(viewer.Anonymized(activity)) {
		log.InfoContext(ctx, "ignore unavailable comment sort", "user_id", viewer.UserID, "sort", value)
		return DefaultSort, nil
	}
	if err := p.prefs.SetPreference(ctx, viewer.UserID, SortPreferenceName, f.String()); err != nil {
		return DefaultSort, err
	}
	return f, nil
}

// Resolve hint 非空时视为新的选择并保存，否则沿用已保存的偏好
func (p *SortPlanner) Resolve(ctx context.Context, viewer Viewer, activity Activity, hint string) (SortFeature, error) {
	if hint == "" {
		return p.Current(ctx, viewer, activity), nil
	}
	return p.Save(ctx, viewer, activity, hint)
}
