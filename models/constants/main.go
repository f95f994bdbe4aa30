package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout varanno and it's
	associated services.
*/
type AssemblyId string
type AnnotationSource string
type SessionState string
type FileFormat string
