package categoryservice

import "github.com/sushihentaime/postly/internal/common"

func validateName(v *common.Validator, name string) {
	v.Check(v.CheckNotBlank(name), "name", "must be provided")
	v.Check(v.CheckStringLength(name, 0, 50), "name", "must not be more than 50 characters long")
}
