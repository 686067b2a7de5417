package postservice

import "github.com/sushihentaime/postly/internal/common"

func validateTitle(v *common.Validator, title string) {
	v.Check(v.CheckNotBlank(title), "title", "must be provided")
	v.Check(v.CheckStringLength(title, 0, 200), "title", "must not be more than 200 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(v.CheckNotBlank(content), "content", "must be provided")
}
