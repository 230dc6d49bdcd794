package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/blues/cfp/internal/model"
)

// 项目与贡献的金额、长度、日期边界（金额单位：EGP）
const (
	MinTitleLength   = 10
	MaxTitleLength   = 200
	MinDetailsLength = 50
	MaxDetailsLength = 5000

	MinTargetAmount int64 = 100
	MaxTargetAmount int64 = 10000000

	MinContributionAmount int64 = 1
	MaxContributionAmount int64 = 100000
	MaxMessageLength            = 500

	MaxStartDateAheadDays = 365
	MaxEndDateAheadDays   = 730
	MinCampaignDays       = 7
	MaxCampaignDays       = 365
)

// FieldErrors 按字段聚合的校验错误
type FieldErrors map[string][]string

// Add 追加字段错误
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// HasErrors 是否存在校验错误
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// Error 实现error接口
func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, messages := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(messages, "; ")))
	}
	return strings.Join(parts, ", ")
}

// Denylist 敏感词列表
type Denylist []string

// Matches 文本是否命中敏感词
func (d Denylist) Matches(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range d {
		if word != "" && strings.Contains(lower, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

// Rules 写入校验规则，敏感词通过配置注入
type Rules struct {
	TitleDenylist   Denylist
	MessageDenylist Denylist
}

// NewRules 创建校验规则
func NewRules(titleDenylist, messageDenylist []string) *Rules {
	return &Rules{
		TitleDenylist:   titleDenylist,
		MessageDenylist: messageDenylist,
	}
}

// ValidateProject 校验项目写入数据，isNew为true时校验开始日期不早于今天
func (r *Rules) ValidateProject(project *model.ProjectModel, isNew bool, now time.Time) FieldErrors {
	errs := FieldErrors{}
	today := dateOf(now)

	title := strings.TrimSpace(project.Title)
	if len(title) < MinTitleLength {
		errs.Add("title", fmt.Sprintf("项目标题至少需要%d个字符", MinTitleLength))
	}
	if len(title) > MaxTitleLength {
		errs.Add("title", fmt.Sprintf("项目标题不能超过%d个字符", MaxTitleLength))
	}
	if r.TitleDenylist.Matches(title) {
		errs.Add("title", "项目标题包含违禁内容")
	}

	details := strings.TrimSpace(project.Details)
	if len(details) < MinDetailsLength {
		errs.Add("details", fmt.Sprintf("项目描述至少需要%d个字符", MinDetailsLength))
	}
	if len(details) > MaxDetailsLength {
		errs.Add("details", fmt.Sprintf("项目描述不能超过%d个字符", MaxDetailsLength))
	}

	if project.TargetAmount < MinTargetAmount {
		errs.Add("target_amount", fmt.Sprintf("目标金额不能低于%d EGP", MinTargetAmount))
	}
	if project.TargetAmount > MaxTargetAmount {
		errs.Add("target_amount", fmt.Sprintf("目标金额不能超过%d EGP", MaxTargetAmount))
	}

	start := dateOf(project.StartDate)
	end := dateOf(project.EndDate)

	if isNew && start.Before(today) {
		errs.Add("start_date", "开始日期不能早于今天")
	}
	if start.After(today.AddDate(0, 0, MaxStartDateAheadDays)) {
		errs.Add("start_date", "开始日期不能晚于一年后")
	}
	if end.Before(today) {
		errs.Add("end_date", "结束日期不能早于今天")
	}
	if end.After(today.AddDate(0, 0, MaxEndDateAheadDays)) {
		errs.Add("end_date", "结束日期不能晚于两年后")
	}

	if !end.After(start) {
		errs.Add("end_date", "结束日期必须晚于开始日期")
	} else {
		duration := int(end.Sub(start).Hours() / 24)
		if duration < MinCampaignDays {
			errs.Add("end_date", fmt.Sprintf("活动时长不能少于%d天", MinCampaignDays))
		}
		if duration > MaxCampaignDays {
			errs.Add("end_date", fmt.Sprintf("活动时长不能超过%d天", MaxCampaignDays))
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidateContribution 校验贡献写入数据
func (r *Rules) ValidateContribution(amount int64, message string) FieldErrors {
	errs := FieldErrors{}

	if amount < MinContributionAmount {
		errs.Add("amount", fmt.Sprintf("最低贡献金额为%d EGP", MinContributionAmount))
	}
	if amount > MaxContributionAmount {
		errs.Add("amount", fmt.Sprintf("单笔贡献金额不能超过%d EGP", MaxContributionAmount))
	}

	message = strings.TrimSpace(message)
	if len(message) > MaxMessageLength {
		errs.Add("message", fmt.Sprintf("留言不能超过%d个字符", MaxMessageLength))
	}
	if r.MessageDenylist.Matches(message) {
		errs.Add("message", "留言包含违禁内容")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// 埃及手机号: +201xxxxxxxxx / 01xxxxxxxxx / 1xxxxxxxxx
	phonePattern    = regexp.MustCompile(`^(\+201|01|1)[0125][0-9]{8}$`)
	letterPattern   = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
	phoneSeparators = regexp.MustCompile(`[\s-]`)
)

// ValidateRegistration 校验用户注册数据
func (r *Rules) ValidateRegistration(email, password, firstName, lastName, phone string) FieldErrors {
	errs := FieldErrors{}

	if !emailPattern.MatchString(email) {
		errs.Add("email", "请输入有效的邮箱地址")
	}
	if len(password) < 8 {
		errs.Add("password", "密码至少需要8个字符")
	} else if !letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		errs.Add("password", "密码必须同时包含字母和数字")
	}
	if name := strings.TrimSpace(firstName); name == "" || len(name) > 30 {
		errs.Add("first_name", "名字长度必须在1到30个字符之间")
	}
	if name := strings.TrimSpace(lastName); name == "" || len(name) > 30 {
		errs.Add("last_name", "姓氏长度必须在1到30个字符之间")
	}
	if !phonePattern.MatchString(phoneSeparators.ReplaceAllString(phone, "")) {
		errs.Add("phone", "请输入有效的埃及手机号（如 01012345678）")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// dateOf 截断到自然日
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
