package hermes

import "strconv"

// SubjectCatalogAll matches every catalog event.
const SubjectCatalogAll = "spechunter.catalog.>"

func SubjectCatalogDiscovered(itemID int64) string {
	return "spechunter.catalog." + strconv.FormatInt(itemID, 10) + ".discovered"
}

func SubjectCatalogAdded(itemID int64) string {
	return "spechunter.catalog." + strconv.FormatInt(itemID, 10) + ".added"
}

func SubjectCompareToggled(sessionID string) string {
	return "spechunter.session." + sessionID + ".compare.toggled"
}

func SubjectDiscoveryFailed(sessionID string) string {
	return "spechunter.session." + sessionID + ".discovery.failed"
}
