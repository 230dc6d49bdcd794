package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/blues/cfp/internal/model"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func testRules() *Rules {
	return NewRules(
		[]string{"scam", "fake", "fraud", "illegal"},
		[]string{"spam", "scam", "fake", "fraud"},
	)
}

func validProject() *model.ProjectModel {
	return &model.ProjectModel{
		Title:        "Community Solar Garden",
		Details:      strings.Repeat("A worthwhile neighborhood project. ", 5),
		TargetAmount: 50000,
		StartDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidProjectPasses(t *testing.T) {
	errs := testRules().ValidateProject(validProject(), true, testNow)
	assert.Nil(t, errs)
}

func TestEndDateMustBeAfterStartDate(t *testing.T) {
	p := validProject()
	p.EndDate = p.StartDate

	errs := testRules().ValidateProject(p, true, testNow)
	assert.NotNil(t, errs)
	assert.Contains(t, errs["end_date"], "结束日期必须晚于开始日期")
}

func TestStartDateNotInPastForNewProjects(t *testing.T) {
	p := validProject()
	p.StartDate = testNow.AddDate(0, 0, -1)

	errs := testRules().ValidateProject(p, true, testNow)
	assert.NotNil(t, errs)
	assert.NotEmpty(t, errs["start_date"])

	// 更新已有项目时不检查开始日期是否过期
	errs = testRules().ValidateProject(p, false, testNow)
	assert.Nil(t, errs)
}

func TestCampaignDurationBounds(t *testing.T) {
	p := validProject()
	p.EndDate = p.StartDate.AddDate(0, 0, 3)
	errs := testRules().ValidateProject(p, true, testNow)
	assert.NotNil(t, errs)
	assert.Contains(t, errs["end_date"], "活动时长不能少于7天")

	p = validProject()
	p.EndDate = p.StartDate.AddDate(0, 0, 400)
	errs = testRules().ValidateProject(p, true, testNow)
	assert.NotNil(t, errs)
	assert.Contains(t, errs["end_date"], "活动时长不能超过365天")
}

func TestTitleRules(t *testing.T) {
	p := validProject()
	p.Title = "short"
	errs := testRules().ValidateProject(p, true, testNow)
	assert.NotNil(t, errs)
	assert.NotEmpty(t, errs["title"])

	p = validProject()
	p.Title = "Totally legit project, not a scam at all"
	errs = testRules().ValidateProject(p, true, testNow)
	assert.NotNil(t, errs)
	assert.Contains(t, errs["title"], "项目标题包含违禁内容")
}

func TestTargetAmountBounds(t *testing.T) {
	p := validProject()
	p.TargetAmount = 50
	errs := testRules().ValidateProject(p, true, testNow)
	assert.NotNil(t, errs)
	assert.NotEmpty(t, errs["target_amount"])

	p.TargetAmount = 20000000
	errs = testRules().ValidateProject(p, true, testNow)
	assert.NotNil(t, errs)
	assert.NotEmpty(t, errs["target_amount"])
}

func TestContributionAmountBounds(t *testing.T) {
	rules := testRules()

	errs := rules.ValidateContribution(0, "")
	assert.NotNil(t, errs)
	assert.NotEmpty(t, errs["amount"])

	errs = rules.ValidateContribution(200000, "")
	assert.NotNil(t, errs)
	assert.NotEmpty(t, errs["amount"])

	errs = rules.ValidateContribution(100, "good luck!")
	assert.Nil(t, errs)
}

func TestContributionMessageDenylist(t *testing.T) {
	errs := testRules().ValidateContribution(100, "this looks like SPAM honestly")
	assert.NotNil(t, errs)
	assert.Contains(t, errs["message"], "留言包含违禁内容")
}

func TestDenylistIsInjectable(t *testing.T) {
	rules := NewRules(nil, []string{"крамола"})

	errs := rules.ValidateContribution(100, "this looks like spam honestly")
	assert.Nil(t, errs)

	errs = rules.ValidateContribution(100, "тут крамола")
	assert.NotNil(t, errs)
}

func TestValidateRegistration(t *testing.T) {
	rules := testRules()

	errs := rules.ValidateRegistration("ann@example.com", "passw0rd1", "Ann", "Lee", "01012345678")
	assert.Nil(t, errs)

	errs = rules.ValidateRegistration("not-an-email", "short", "", "Lee", "12345")
	assert.NotNil(t, errs)
	assert.NotEmpty(t, errs["email"])
	assert.NotEmpty(t, errs["password"])
	assert.NotEmpty(t, errs["first_name"])
	assert.NotEmpty(t, errs["phone"])

	// 密码必须同时包含字母和数字
	errs = rules.ValidateRegistration("ann@example.com", "abcdefgh", "Ann", "Lee", "01012345678")
	assert.NotNil(t, errs)
	assert.NotEmpty(t, errs["password"])
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("amount", "最低贡献金额为1 EGP")
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs.Error(), "amount")
}
