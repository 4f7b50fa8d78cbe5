package dicom

// DICOM SOP Class UIDs as defined in DICOM Part 4, Annex B
// https://dicom.nema.org/medical/dicom/current/output/chtml/part04/sect_B.5.html

// Structured Report Storage SOP Classes
const (
	BasicTextSRStorage           = "1.2.840.10008.5.1.4.1.1.88.11"
	EnhancedSRStorage            = "1.2.840.10008.5.1.4.1.1.88.22"
	ComprehensiveSRStorage       = "1.2.840.10008.5.1.4.1.1.88.33"
	Comprehensive3DSRStorage     = "1.2.840.10008.5.1.4.1.1.88.34"
	ProcedureLogStorage          = "1.2.840.10008.5.1.4.1.1.88.40"
	MammographyCADSRStorage      = "1.2.840.10008.5.1.4.1.1.88.50"
	KeyObjectSelectionDocument   = "1.2.840.10008.5.1.4.1.1.88.59"
	ChestCADSRStorage            = "1.2.840.10008.5.1.4.1.1.88.65"
	XRayRadiationDoseSRStorage   = "1.2.840.10008.5.1.4.1.1.88.67"
	ColonCADSRStorage            = "1.2.840.10008.5.1.4.1.1.88.69"
	ImplantationPlanSRStorage    = "1.2.840.10008.5.1.4.1.1.88.70"
	AcquisitionContextSRStorage  = "1.2.840.10008.5.1.4.1.1.88.71"
	SimplifiedAdultEchoSRStorage = "1.2.840.10008.5.1.4.1.1.88.72"
)

// Image Storage SOP Classes
const (
	ComputedRadiographyImageStorage                   = "1.2.840.10008.5.1.4.1.1.1"
	DigitalXRayImageStorageForPresentation            = "1.2.840.10008.5.1.4.1.1.1.1"
	DigitalXRayImageStorageForProcessing              = "1.2.840.10008.5.1.4.1.1.1.1.1"
	DigitalMammographyXRayImageStorageForPresentation = "1.2.840.10008.5.1.4.1.1.1.2"
	DigitalMammographyXRayImageStorageForProcessing   = "1.2.840.10008.5.1.4.1.1.1.2.1"
	CTImageStorage                                    = "1.2.840.10008.5.1.4.1.1.2"
	EnhancedCTImageStorage                            = "1.2.840.10008.5.1.4.1.1.2.1"
	UltrasoundImageStorage                            = "1.2.840.10008.5.1.4.1.1.6.1"
	MRImageStorage                                    = "1.2.840.10008.5.1.4.1.1.4"
	EnhancedMRImageStorage                            = "1.2.840.10008.5.1.4.1.1.4.1"
	SecondaryCaptureImageStorage                      = "1.2.840.10008.5.1.4.1.1.7"
	NuclearMedicineImageStorage                       = "1.2.840.10008.5.1.4.1.1.20"
	PETImageStorage                                   = "1.2.840.10008.5.1.4.1.1.128"
	RTImageStorage                                    = "1.2.840.10008.5.1.4.1.1.481.1"
)

// Encapsulated Documents
const (
	EncapsulatedPDFStorage = "1.2.840.10008.5.1.4.1.1.104.1"
	EncapsulatedCDAStorage = "1.2.840.10008.5.1.4.1.1.104.2"
)

// Media Storage Directory
const (
	MediaStorageDirectoryStorage = "1.2.840.10008.1.3.10"
)

// SOPClassInfo contains information about a SOP class
type SOPClassInfo struct {
	UID      string
	Name     string
	Category string
}

// SOPClassRegistry maps SOP class UIDs to their descriptions.
var SOPClassRegistry = map[string]SOPClassInfo{
	BasicTextSRStorage: {
		UID:      BasicTextSRStorage,
		Name:     "Basic Text SR",
		Category: "Structured Report",
	},
	EnhancedSRStorage: {
		UID:      EnhancedSRStorage,
		Name:     "Enhanced SR",
		Category: "Structured Report",
	},
	ComprehensiveSRStorage: {
		UID:      ComprehensiveSRStorage,
		Name:     "Comprehensive SR",
		Category: "Structured Report",
	},
	Comprehensive3DSRStorage: {
		UID:      Comprehensive3DSRStorage,
		Name:     "Comprehensive 3D SR",
		Category: "Structured Report",
	},
	ProcedureLogStorage: {
		UID:      ProcedureLogStorage,
		Name:     "Procedure Log",
		Category: "Structured Report",
	},
	MammographyCADSRStorage: {
		UID:      MammographyCADSRStorage,
		Name:     "Mammography CAD SR",
		Category: "Structured Report",
	},
	KeyObjectSelectionDocument: {
		UID:      KeyObjectSelectionDocument,
		Name:     "Key Object Selection Document",
		Category: "Structured Report",
	},
	ChestCADSRStorage: {
		UID:      ChestCADSRStorage,
		Name:     "Chest CAD SR",
		Category: "Structured Report",
	},
	XRayRadiationDoseSRStorage: {
		UID:      XRayRadiationDoseSRStorage,
		Name:     "X-Ray Radiation Dose SR",
		Category: "Structured Report",
	},
	ColonCADSRStorage: {
		UID:      ColonCADSRStorage,
		Name:     "Colon CAD SR",
		Category: "Structured Report",
	},
	ImplantationPlanSRStorage: {
		UID:      ImplantationPlanSRStorage,
		Name:     "Implantation Plan SR",
		Category: "Structured Report",
	},
	AcquisitionContextSRStorage: {
		UID:      AcquisitionContextSRStorage,
		Name:     "Acquisition Context SR",
		Category: "Structured Report",
	},
	SimplifiedAdultEchoSRStorage: {
		UID:      SimplifiedAdultEchoSRStorage,
		Name:     "Simplified Adult Echo SR",
		Category: "Structured Report",
	},

	ComputedRadiographyImageStorage: {
		UID:      ComputedRadiographyImageStorage,
		Name:     "Computed Radiography Image Storage",
		Category: "Storage",
	},
	DigitalXRayImageStorageForPresentation: {
		UID:      DigitalXRayImageStorageForPresentation,
		Name:     "Digital X-Ray Image Storage (For Presentation)",
		Category: "Storage",
	},
	DigitalXRayImageStorageForProcessing: {
		UID:      DigitalXRayImageStorageForProcessing,
		Name:     "Digital X-Ray Image Storage (For Processing)",
		Category: "Storage",
	},
	DigitalMammographyXRayImageStorageForPresentation: {
		UID:      DigitalMammographyXRayImageStorageForPresentation,
		Name:     "Digital Mammography X-Ray Image Storage (For Presentation)",
		Category: "Storage",
	},
	DigitalMammographyXRayImageStorageForProcessing: {
		UID:      DigitalMammographyXRayImageStorageForProcessing,
		Name:     "Digital Mammography X-Ray Image Storage (For Processing)",
		Category: "Storage",
	},
	CTImageStorage: {
		UID:      CTImageStorage,
		Name:     "CT Image Storage",
		Category: "Storage",
	},
	EnhancedCTImageStorage: {
		UID:      EnhancedCTImageStorage,
		Name:     "Enhanced CT Image Storage",
		Category: "Storage",
	},
	UltrasoundImageStorage: {
		UID:      UltrasoundImageStorage,
		Name:     "Ultrasound Image Storage",
		Category: "Storage",
	},
	MRImageStorage: {
		UID:      MRImageStorage,
		Name:     "MR Image Storage",
		Category: "Storage",
	},
	EnhancedMRImageStorage: {
		UID:      EnhancedMRImageStorage,
		Name:     "Enhanced MR Image Storage",
		Category: "Storage",
	},
	SecondaryCaptureImageStorage: {
		UID:      SecondaryCaptureImageStorage,
		Name:     "Secondary Capture Image Storage",
		Category: "Storage",
	},
	NuclearMedicineImageStorage: {
		UID:      NuclearMedicineImageStorage,
		Name:     "Nuclear Medicine Image Storage",
		Category: "Storage",
	},
	PETImageStorage: {
		UID:      PETImageStorage,
		Name:     "PET Image Storage",
		Category: "Storage",
	},
	RTImageStorage: {
		UID:      RTImageStorage,
		Name:     "RT Image Storage",
		Category: "Storage",
	},

	EncapsulatedPDFStorage: {
		UID:      EncapsulatedPDFStorage,
		Name:     "Encapsulated PDF Storage",
		Category: "Storage",
	},
	EncapsulatedCDAStorage: {
		UID:      EncapsulatedCDAStorage,
		Name:     "Encapsulated CDA Storage",
		Category: "Storage",
	},

	MediaStorageDirectoryStorage: {
		UID:      MediaStorageDirectoryStorage,
		Name:     "Media Storage Directory (DICOMDIR)",
		Category: "Directory",
	},
}

// DescribeSOPClass returns the human-readable description of a SOP
// class UID. Unknown UIDs resolve to a generic description rather
// than an error.
func DescribeSOPClass(uid string) string {
	if info, ok := SOPClassRegistry[uid]; ok {
		return info.Name
	}
	return "Unknown SOP class (" + uid + ")"
}

// IsKnownSOPClass reports whether the UID is in the registry.
func IsKnownSOPClass(uid string) bool {
	_, ok := SOPClassRegistry[uid]
	return ok
}
