package reso

// Member is the field map for the Member (agent) entity set.
var Member = NewFieldMap(
	"AGENT",
	"MemberKey",
	nil,
	[]Field{
		{RESOName: "MemberKey", Column: "AGENTKEY", EdmType: "Edm.Int32"},
		{RESOName: "MemberMlsId", Column: "AGENTMLSID"},
		{RESOName: "MemberFirstName", Column: "GIVENNAME"},
		{RESOName: "MemberLastName", Column: "SURNAME"},
		{RESOName: "MemberFullName", Column: "FULLNAME"},
		{RESOName: "MemberEmail", Column: "EMAIL"},
		{RESOName: "MemberDirectPhone", Column: "DIRECTPHONE"},
		{RESOName: "MemberMobilePhone", Column: "MOBILEPHONE"},
		{RESOName: "MemberStatus", Column: "STATUS"},
		{RESOName: "OfficeKey", Column: "OFFICEKEY", EdmType: "Edm.Int32"},
		{RESOName: "OfficeMlsId", Column: "OFFICEMLSID"},
		{RESOName: "ModificationTimestamp", Column: "MODIFICATIONTIMESTAMP", EdmType: "Edm.DateTimeOffset"},
	},
)
