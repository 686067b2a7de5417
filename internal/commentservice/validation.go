package commentservice

import "github.com/sushihentaime/postly/internal/common"

func validateContent(v *common.Validator, content string) {
	v.Check(v.CheckNotBlank(content), "content", "must be provided")
	v.Check(v.CheckStringLength(content, 0, 2000), "content", "must not be more than 2000 characters long")
}
