// Package vocab holds the static Kriegsmarine message vocabulary: phrase
// pools and format templates used to synthesize plausible plaintext traffic.
// Pure data, no behavior.
package vocab

// Naval and military ranks
var NavalRanks = []string{
	"Großadmiral", "Admiral", "Vizeadmiral", "Konteradmiral",
	"Flottillenadmiral", "Kapitän zur See", "Fregattenkapitän", "Korvettenkapitän",
}

var NonCommissionedRanks = []string{
	"Bootsmannmaat", "Oberbootsmann", "Hauptbootsmann", "Signalmaat",
	"Signalobermaat", "Zimmermannsmaat", "Artilleriemechanikermaat", "Torpedomechanikermaat",
}

// Military units and organizations
var MilitaryUnits = []string{
	"Kriegsmarine", "Wehrmacht", "Oberkommando der Marine", "OKM",
	"Luftwaffe", "Abwehr", "Abteilung", "U-Bootwaffe", "Flottenkommando",
}

// Common message openings
var MessageOpenings = []string{
	"AN BEFEHLSHABER", "AN GRUPPE", "VON KOMMANDO", "FUNKSPRUCH", "GEHEIME KOMMANDOSACHE",
}

// Naval communication terms
var SignalSystems = []string{"Signalbuch", "Wetterkurzschlüssel", "WKS", "Kurzsignale"}

var CommunicationTerms = []string{
	"Funkspruch", "Verzifferung", "Funkpeilung", "Einleitungszeichen",
	"Antennenkreis", "Antennenleistung",
}

// Submarine operations vocabulary
var SubmarineTerms = []string{
	"U-Boot", "Periskop", "Aufgetaucht", "Getaucht", "Sehrohr",
	"Batterien in Reihen geschaltet", "Abgeschossen", "Tiefe", "Oberwasserzieloptik",
}

// Navigation terms
var NavigationTerms = []string{
	"Kurs", "Quadrat", "Standort", "Abschnitt", "Abdrift",
	"Abdriftwinkel", "Aufmarsch",
}

// Weather reporting terminology
var WeatherTerms = []string{
	"Wetterbericht", "Temperatur", "Sicht", "Wolkenhoehe",
	"Windstaerke", "Nebelgebiet", "Frontensystem",
}

// Combat and tactical terms
var CombatTerms = []string{
	"Geleitzug", "Konvoi", "Feindsichtung", "Handelschiff", "Kreuzer",
	"Angriff", "Versenkung", "Adlerangriff", "Abteilungsnachrichtenstaffel",
}

// Commands and orders
var CommandTerms = []string{
	"Befehl", "Anweisung", "Abtreten", "Abweisen", "Absetzung",
	"Aufgabe", "Aufklarung",
}

// Alert and status terms
var AlertTerms = []string{
	"Gefechtsbereit", "Alarmstart", "Abtransport", "Abwehrzone", "Anflugrichtung",
}

// Naval vessels and equipment
var Vessels = []string{
	"Schnellboot", "Hilfskreuzer", "Zerstörer", "Schlachtschiff",
	"Panzerschiff", "Unterseeboot", "Minensucher", "Torpedoboot",
	"Flugzeugträger", "Kreuzer", "Flakschiff", "Vorpostenboot",
}

// Action verbs
var ActionVerbs = []string{
	"abschießen", "versenken", "angreifen", "beschädigen", "aufklären",
	"treffen", "abwerfen", "auslaufen", "einlaufen", "melden",
	"beobachten", "funken",
}

// Positions and coordinates
var Positions = []string{
	"Quadrat", "Breitengrad", "Längengrad", "Position", "Standort",
	"Sektor", "Abschnitt", "Operationsgebiet", "Marinequadrat",
}

// Grid square examples (historical Kriegsmarine grid system)
var GridSquares = []string{
	"AJ47", "BF13", "CK89", "AL88", "AM63", "BC10",
	"BD20", "CX33", "DJ56", "FG77", "HI22", "JK45",
}

// Time expressions
var TimeExpressions = []string{
	"Uhr", "Stunden", "Minuten", "sofort", "unverzüglich",
	"baldmöglichst", "bei Tagesanbruch", "bei Einbruch der Dunkelheit",
}

// Wind directions for weather reports
var WindDirections = []string{
	"NORD", "OST", "SUED", "WEST", "NORDOST", "SUEDOST", "SUEDWEST", "NORDWEST",
}

// Weather phenomena; the empty entry yields reports with no phenomenon field.
var WeatherPhenomena = []string{
	"KLAR", "BEWOELKT", "REGEN", "NEBEL", "SCHNEE", "STURM", "",
}

// Message format templates. Arguments, in order:
//
//	WeatherTemplate:  grid, hour, minute, temp, visibility, windDir, windStrength, pressure, phenomenon
//	PositionTemplate: grid, hour, minute, course, speed
//	SightingTemplate: vessel, number, location, hour, minute, course, speed
//
// Military messages have no fixed template; they are composed from
// MessageOpenings, MilitaryUnits, CommandTerms, Vessels and a grid square.
const (
	WeatherTemplate  = "WETTERKURZSIGNAL QUADRAT %s %02d%02dUHR %dGRAD %dKM %s %d %d %s"
	PositionTemplate = "STANDORT QUADRAT %s %02d%02dUHR KURS %d GESCHWINDIGKEIT %d"
	SightingTemplate = "FEINDSICHTUNG %s %d %s %02d%02dUHR KURS %d GESCHWINDIGKEIT %d"
)
