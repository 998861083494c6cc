// Package sofa implements the SOFA object model: an in-memory record of
// acoustic measurement data bound to a versioned convention.
//
// An Object is created from a convention with New. Its fields follow a
// two-tier schema: the shared, immutable convention schema and a
// per-object table of custom entries added with AddVariable and
// AddAttribute. Once protected, an object rejects unknown fields, writes to
// read-only fields and deletion of mandatory fields.
//
// Verify infers the sizes of the symbolic dimensions (E, R, M, N, C, I, S
// and custom letters) from the field shapes and checks every field against
// the convention and the rule registry. Issues are collected per phase and
// reported together:
//
//	obj, err := sofa.New("SimpleFreeFieldHRIR", sofa.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	if err := obj.Set("Data_IR", irs); err != nil {
//		return err
//	}
//	if _, err := obj.Verify(sofa.OnIssueFail, sofa.ModeWrite); err != nil {
//		return err
//	}
package sofa
