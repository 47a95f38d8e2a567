package gormx

import (
	"reflect"

	"gorm.io/gorm"

	"devcert/pkg/helper"
)

type validationImpl struct{}

// NewValidationPlugin validate model with `validate` struct tags before create
//
// updates are not validated: column updates are issued with an empty model.
func NewValidationPlugin() gorm.Plugin { return &validationImpl{} }

func (v *validationImpl) Name() string { return "validation" }
func (v *validationImpl) Initialize(db *gorm.DB) error {
	callback := db.Callback()
	if callback.Create().Get("validations:validate") == nil {
		return callback.Create().Before("gorm:before_create").Register("validations:validate", v.validate)
	}

	return nil
}

func (v *validationImpl) validate(db *gorm.DB) {
	if db.Statement.Model == nil {
		return
	}

	value := reflect.ValueOf(db.Statement.Model)
	for value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	if value.Kind() == reflect.Struct {
		if err := helper.ValidateStruct(value.Interface()); err != nil {
			db.AddError(err)
		}
	}
}
