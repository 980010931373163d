// Package validation validates configuration structs.
//
// It supports struct tag validation (using the validator library) and
// programmatic checks with error collection. Both report an
// *errors.AppError coded INVALID_CONFIG whose "fields" detail lists every
// FieldError.
//
// # Struct Tag Validation
//
//	type Stage struct {
//	    Kind string `mapstructure:"kind" validate:"required,oneof=filter transform"`
//	}
//	err := validation.Struct(stage)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Check(expr != "", "pipeline.terminal.expr", "is required")
//	err := v.Err()
package validation
