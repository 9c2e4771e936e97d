package reso

// Office is the field map for the Office entity set.
var Office = NewFieldMap(
	"OFFICE",
	"OfficeKey",
	nil,
	[]Field{
		{RESOName: "OfficeKey", Column: "OFFICEKEY", EdmType: "Edm.Int32"},
		{RESOName: "OfficeMlsId", Column: "OFFICEMLSID"},
		{RESOName: "OfficeName", Column: "OFFICENAME"},
		{RESOName: "OfficePhone", Column: "OFFICEPHONE"},
		{RESOName: "OfficeAddress1", Column: "ADDRESS1"},
		{RESOName: "OfficeCity", Column: "CITY"},
		{RESOName: "OfficeStateOrProvince", Column: "STATEORPROVINCE"},
		{RESOName: "OfficePostalCode", Column: "POSTALCODE"},
		{RESOName: "OfficeStatus", Column: "STATUS"},
		{RESOName: "ModificationTimestamp", Column: "MODIFICATIONTIMESTAMP", EdmType: "Edm.DateTimeOffset"},
	},
)
