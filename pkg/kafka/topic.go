package kafka

// TopicPrefix namespaces every topic the storefront writes to.
const TopicPrefix = "storefront"

// Topic builds a topic name in the form "storefront.{domain}.{action}".
func Topic(domain, action string) string {
	return TopicPrefix + "." + domain + "." + action
}
