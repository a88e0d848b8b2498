package client

const (
	endpointHealth = "/health"

	// Agents
	endpointAgents      = "/agents"    // GET ?active_only=, POST
	endpointAgentByID   = "/agents/%d" // PUT, DELETE
	endpointAgentDSs    = "/agents/%d/data-sources"
	endpointAgentDSByID = "/agents/%d/data-sources/%d" // DELETE

	// Conversations
	endpointConversations       = "/conversations"
	endpointConversationByID    = "/conversations/%d" // GET, DELETE
	endpointConversationDSUsage = "/conversations/%d/data-sources"

	// Data sources
	endpointDataSources    = "/data-sources"    // GET, POST
	endpointDataSourceByID = "/data-sources/%d" // PUT, DELETE
	endpointDataSourceTest = "/data-sources/%d/test"

	endpointChatCompletion = "/chat/completion"
)
