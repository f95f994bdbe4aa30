package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "Varanno Variant Annotation Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the Varanno variant annotation API!"
	SERVICE_DESCRIPTION ServiceInfo = "Aligns reads, calls variants and annotates them against public variant databases."

	SERVICE_ARTIFACT    ServiceInfo = "varanno"
	SERVICE_VERSION     ServiceInfo = "0.1.0"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("org.varanno:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
	SERVICE_TYPE        ServiceInfo = ServiceInfo(fmt.Sprintf("%s:%s", SERVICE_TYPE_NO_VER, SERVICE_VERSION))
)
