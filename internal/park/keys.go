package park

// PartitionPark is the partition key value shared by every park item.
const PartitionPark = "park"

// Attribute names for DynamoDB items.
const (
	AttrVisible = "visible"
)

// ParamPark is the query string parameter selecting a single park.
const ParamPark = "park"
