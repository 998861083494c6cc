// Package sofaio stores SOFA objects in YAML containers.
//
// A container has three sections. attributes holds the GLOBAL attributes
// without their prefix, dimensions the sizes inferred by verification and
// variables every numeric and string variable with its type, dimension
// letters, shape, flat row-major values and attributes:
//
//	attributes:
//	  Conventions: SOFA
//	  SOFAConventions: SimpleFreeFieldHRIR
//	  SOFAConventionsVersion: "1.0"
//	dimensions:
//	  M: 1
//	  R: 2
//	variables:
//	  Data.IR:
//	    type: double
//	    dimensions: MRN
//	    shape: [1, 2, 1]
//	    values: [0, 0]
//	    attributes:
//	      Comment: measured in an anechoic chamber
package sofaio
