package reso

// Property is the field map for the Property entity set, sourced from
// the MLS common view. ListingKey is the key field; its backend
// column holds an opaque string that the API layer re-encodes (see
// internal/odata.EncodeKey).
var Property = NewFieldMap(
	"PROPERTY_VIEW",
	"ListingKey",
	[]string{"ListAgent", "ListOffice"},
	[]Field{
		// Identification
		{RESOName: "ListingKey", Column: "IDCLISTINGKEY"},
		{RESOName: "ListingId", Column: "IDCLISTINGID"},
		{RESOName: "MlsStatus", Column: "MLSSTATUS"},

		// Address & location
		{RESOName: "StreetNumber", Column: "STREETNUMBER"},
		{RESOName: "StreetName", Column: "STREETNAME"},
		{RESOName: "City", Column: "CITY"},
		{RESOName: "StateOrProvince", Column: "STATEORPROVINCE"},
		{RESOName: "PostalCode", Column: "POSTALCODE"},
		{RESOName: "UnparsedAddress", Column: "UNPARSEDADDRESS"},
		{RESOName: "Latitude", Column: "LATITUDE", EdmType: "Edm.Decimal"},
		{RESOName: "Longitude", Column: "LONGITUDE", EdmType: "Edm.Decimal"},
		{RESOName: "MLSAreaMajor", Column: "MLSAREAMAJOR"},
		{RESOName: "MLSAreaMinor", Column: "MLSAREAMINOR"},

		// Pricing
		{RESOName: "ListPrice", Column: "IDCLISTPRICE", EdmType: "Edm.Decimal"},
		{RESOName: "ClosePrice", Column: "IDCCLOSEPRICE", EdmType: "Edm.Decimal"},
		{RESOName: "OriginalListPrice", Column: "IDCORIGLISTPRICE", EdmType: "Edm.Decimal"},
		{RESOName: "PreviousListPrice", Column: "IDCPREVLISTPRICE", EdmType: "Edm.Decimal"},
		{RESOName: "TaxAnnualAmount", Column: "TAXANNUALAMOUNT", EdmType: "Edm.Decimal"},

		// Property details
		{RESOName: "BedroomsTotal", Column: "BEDROOMSTOTAL", EdmType: "Edm.Int32"},
		{RESOName: "BathroomsTotal", Column: "BATHROOMSTOTAL", EdmType: "Edm.Int32"},
		{RESOName: "LivingArea", Column: "LIVINGAREA", EdmType: "Edm.Decimal"},
		{RESOName: "YearBuilt", Column: "YEARBUILT", EdmType: "Edm.Int32"},
		{RESOName: "LotSizeSquareFeet", Column: "LOTSIZESQUAREFEET", EdmType: "Edm.Decimal"},
		{RESOName: "Stories", Column: "STORIES", EdmType: "Edm.Int32"},
		{RESOName: "PropertyType", Column: "PROPERTYTYPE"},
		{RESOName: "PropertySubType", Column: "PROPERTYSUBTYPE"},
		{RESOName: "StandardStatus", Column: "STANDARDSTATUS"},
		{RESOName: "PublicRemarks", Column: "PUBLICREMARKS"},
		{RESOName: "PhotosCount", Column: "PHOTOSCOUNT", EdmType: "Edm.Int32"},
		{RESOName: "PhotosXML", Column: "PHOTOSXML"},

		// Dates
		{RESOName: "OnMarketTimestamp", Column: "ONMARKETTIMESTAMP", EdmType: "Edm.DateTimeOffset"},
		{RESOName: "ModificationTimestamp", Column: "MODIFICATIONTIMESTAMP", EdmType: "Edm.DateTimeOffset"},
		{RESOName: "CloseDate", Column: "CLOSEDATE", EdmType: "Edm.Date"},
		{RESOName: "DaysOnMarket", Column: "DAYSONMARKET", EdmType: "Edm.Int32"},

		// Navigation foreign keys
		{RESOName: "ListAgentKey", Column: "IDCLISTAGENTKEY", EdmType: "Edm.Int32"},
		{RESOName: "ListOfficeKey", Column: "IDCLISTOFFICEKEY", EdmType: "Edm.Int32"},
	},
)
