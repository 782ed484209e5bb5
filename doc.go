// Package scidata provides:
//
// - Validated data records (Data, Data1D, DataLinspace, VectorField) with typed fields
// - Three construction modes: explicit options, init dicts, and files on disk
// - Dict round-trip through AsDict/FromDict, dispatched on the "__class__" key
// - A stable error model via Issues (JSON Pointer, code, message)
// - JSON/YAML load and save with duplicate-key/depth/size enforcement and optional JSON Schema checks
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the token source under source/, schema validation under jsonschema/, and the CLI under cmd/scidata.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	d := scidata.NewData(scidata.WithName("Field H"), scidata.WithUnit("A/m"))
//	err := d.Set("name", 42) // errors.Is(err, scidata.ErrTypeMismatch)
//
//	rec, err := scidata.FromDict(d.AsDict())
//	path, err := scidata.Save(ctx, rec, "out/field")
//	back, err := scidata.Load(ctx, path, scidata.WithSchemaValidation(true))
package scidata
