package types

// AuditAction tags one mutating operation in the audit log.
type AuditAction string

const (
	AuditActionPolicyCreated      AuditAction = "policy.created"
	AuditActionPolicyUpdated      AuditAction = "policy.updated"
	AuditActionPolicyTransitioned AuditAction = "policy.transitioned"
	AuditActionPolicyDeleted      AuditAction = "policy.deleted"

	AuditActionClientCreated     AuditAction = "client.created"
	AuditActionClientUpdated     AuditAction = "client.updated"
	AuditActionClientDeactivated AuditAction = "client.deactivated"

	AuditActionInsurerCreated     AuditAction = "insurer.created"
	AuditActionInsurerUpdated     AuditAction = "insurer.updated"
	AuditActionInsurerDeactivated AuditAction = "insurer.deactivated"
)

func (a AuditAction) String() string {
	return string(a)
}

// ResourceType identifies the resource an audit row refers to. The audit
// log schema is shared across resource types, claims included.
type ResourceType string

const (
	ResourceTypePolicy  ResourceType = "policy"
	ResourceTypeClient  ResourceType = "client"
	ResourceTypeInsurer ResourceType = "insurer"
	ResourceTypeClaim   ResourceType = "claim"
)

func (r ResourceType) String() string {
	return string(r)
}

// DefaultUserAgentMaxLength bounds the stored user agent.
const DefaultUserAgentMaxLength = 512

// TruncateUserAgent cuts ua down to exactly max characters when it is
// longer; shorter values pass through unchanged.
func TruncateUserAgent(ua string, max int) string {
	if max <= 0 {
		max = DefaultUserAgentMaxLength
	}
	if len(ua) <= max {
		return ua
	}
	return ua[:max]
}

// Metadata is free-form audit metadata.
type Metadata map[string]interface{}
