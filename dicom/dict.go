package dicom

// TagInfo holds the dictionary entry for a DICOM tag.
type TagInfo struct {
	Keyword string
	VR      string
}

// dictionary covers the tags this system actually works with: patient,
// study and series identification, DICOMDIR records, and structured
// report content. It is not a full copy of the DICOM data dictionary.
var dictionary = map[Tag]TagInfo{
	// File set / DICOMDIR (group 0x0004)
	{0x0004, 0x1130}: {"FileSetID", VR_CS},
	{0x0004, 0x1200}: {"OffsetOfTheFirstDirectoryRecordOfTheRootDirectoryEntity", VR_UL},
	{0x0004, 0x1202}: {"OffsetOfTheLastDirectoryRecordOfTheRootDirectoryEntity", VR_UL},
	{0x0004, 0x1212}: {"FileSetConsistencyFlag", VR_US},
	{0x0004, 0x1220}: {"DirectoryRecordSequence", VR_SQ},
	{0x0004, 0x1400}: {"OffsetOfTheNextDirectoryRecord", VR_UL},
	{0x0004, 0x1410}: {"RecordInUseFlag", VR_US},
	{0x0004, 0x1420}: {"OffsetOfReferencedLowerLevelDirectoryEntity", VR_UL},
	{0x0004, 0x1430}: {"DirectoryRecordType", VR_CS},
	{0x0004, 0x1500}: {"ReferencedFileID", VR_CS},
	{0x0004, 0x1510}: {"ReferencedSOPClassUIDInFile", VR_UI},
	{0x0004, 0x1511}: {"ReferencedSOPInstanceUIDInFile", VR_UI},
	{0x0004, 0x1512}: {"ReferencedTransferSyntaxUIDInFile", VR_UI},

	// Identification (group 0x0008)
	{0x0008, 0x0005}: {"SpecificCharacterSet", VR_CS},
	{0x0008, 0x0016}: {"SOPClassUID", VR_UI},
	{0x0008, 0x0018}: {"SOPInstanceUID", VR_UI},
	{0x0008, 0x0020}: {"StudyDate", VR_DA},
	{0x0008, 0x0023}: {"ContentDate", VR_DA},
	{0x0008, 0x0030}: {"StudyTime", VR_TM},
	{0x0008, 0x0033}: {"ContentTime", VR_TM},
	{0x0008, 0x0050}: {"AccessionNumber", VR_SH},
	{0x0008, 0x0060}: {"Modality", VR_CS},
	{0x0008, 0x0080}: {"InstitutionName", VR_LO},
	{0x0008, 0x0090}: {"ReferringPhysicianName", VR_PN},
	{0x0008, 0x0100}: {"CodeValue", VR_SH},
	{0x0008, 0x0102}: {"CodingSchemeDesignator", VR_SH},
	{0x0008, 0x0103}: {"CodingSchemeVersion", VR_SH},
	{0x0008, 0x0104}: {"CodeMeaning", VR_LO},
	{0x0008, 0x1030}: {"StudyDescription", VR_LO},
	{0x0008, 0x103E}: {"SeriesDescription", VR_LO},
	{0x0008, 0x1050}: {"PerformingPhysicianName", VR_PN},
	{0x0008, 0x1060}: {"NameOfPhysiciansReadingStudy", VR_PN},
	{0x0008, 0x1070}: {"OperatorsName", VR_PN},
	{0x0008, 0x1090}: {"ManufacturerModelName", VR_LO},
	{0x0008, 0x1111}: {"ReferencedPerformedProcedureStepSequence", VR_SQ},
	{0x0008, 0x1115}: {"ReferencedSeriesSequence", VR_SQ},
	{0x0008, 0x1150}: {"ReferencedSOPClassUID", VR_UI},
	{0x0008, 0x1155}: {"ReferencedSOPInstanceUID", VR_UI},
	{0x0008, 0x1199}: {"ReferencedSOPSequence", VR_SQ},

	// Patient (group 0x0010)
	{0x0010, 0x0010}: {"PatientName", VR_PN},
	{0x0010, 0x0020}: {"PatientID", VR_LO},
	{0x0010, 0x0030}: {"PatientBirthDate", VR_DA},
	{0x0010, 0x0040}: {"PatientSex", VR_CS},
	{0x0010, 0x1010}: {"PatientAge", VR_AS},

	// Acquisition (group 0x0018)
	{0x0018, 0x0015}: {"BodyPartExamined", VR_CS},

	// Relationship (group 0x0020)
	{0x0020, 0x000D}: {"StudyInstanceUID", VR_UI},
	{0x0020, 0x000E}: {"SeriesInstanceUID", VR_UI},
	{0x0020, 0x0010}: {"StudyID", VR_SH},
	{0x0020, 0x0011}: {"SeriesNumber", VR_IS},
	{0x0020, 0x0013}: {"InstanceNumber", VR_IS},

	// Structured report content (group 0x0040)
	{0x0040, 0xA010}: {"RelationshipType", VR_CS},
	{0x0040, 0xA040}: {"ValueType", VR_CS},
	{0x0040, 0xA043}: {"ConceptNameCodeSequence", VR_SQ},
	{0x0040, 0xA050}: {"ContinuityOfContent", VR_CS},
	{0x0040, 0xA120}: {"DateTime", VR_DT},
	{0x0040, 0xA160}: {"TextValue", VR_UT},
	{0x0040, 0xA168}: {"ConceptCodeSequence", VR_SQ},
	{0x0040, 0xA30A}: {"NumericValue", VR_DS},
	{0x0040, 0xA300}: {"MeasuredValueSequence", VR_SQ},
	{0x0040, 0xA491}: {"CompletionFlag", VR_CS},
	{0x0040, 0xA493}: {"VerificationFlag", VR_CS},
	{0x0040, 0xA504}: {"ContentTemplateSequence", VR_SQ},
	{0x0040, 0xA730}: {"ContentSequence", VR_SQ},
	{0x0040, 0x08EA}: {"MeasurementUnitsCodeSequence", VR_SQ},
	{0x0040, 0xDB00}: {"TemplateIdentifier", VR_CS},
}

// KeywordOf returns the symbolic keyword of a tag, or "" when the tag
// is not in the dictionary.
func KeywordOf(tag Tag) string {
	return dictionary[tag].Keyword
}

// VROf returns the dictionary VR of a tag, used when parsing implicit
// VR transfer syntaxes. Unknown tags resolve to UN.
func VROf(tag Tag) string {
	if info, ok := dictionary[tag]; ok {
		return info.VR
	}
	return VR_UN
}
