package symbols

import "sync"

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the builtin table. It is built on first use and shared.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable(builtin)
	})
	return defaultTable
}

// builtin covers the reactions and event vocabulary used in chat threads.
var builtin = []Entry{
	{Glyph: "😀", Codes: []string{"grinning"}, Keywords: []string{"smile", "happy"}},
	{Glyph: "😃", Codes: []string{"smiley"}, Keywords: []string{"happy", "joy"}},
	{Glyph: "😄", Codes: []string{"smile"}, Keywords: []string{"happy", "laugh"}},
	{Glyph: "😁", Codes: []string{"grin"}, Keywords: []string{"teeth"}},
	{Glyph: "😆", Codes: []string{"laughing", "satisfied"}, Keywords: []string{"lol"}},
	{Glyph: "😅", Codes: []string{"sweat_smile"}, Keywords: []string{"relief"}},
	{Glyph: "🤣", Codes: []string{"rofl"}, Keywords: []string{"lol", "laughing"}},
	{Glyph: "😂", Codes: []string{"joy"}, Keywords: []string{"tears", "lol"}},
	{Glyph: "🙂", Codes: []string{"slightly_smiling_face"}},
	{Glyph: "😉", Codes: []string{"wink"}, Keywords: []string{"flirt"}},
	{Glyph: "😊", Codes: []string{"blush"}, Keywords: []string{"proud"}},
	{Glyph: "😇", Codes: []string{"innocent"}, Keywords: []string{"angel", "halo"}},
	{Glyph: "🥰", Codes: []string{"smiling_face_with_three_hearts"}, Keywords: []string{"love", "crush"}},
	{Glyph: "😍", Codes: []string{"heart_eyes"}, Keywords: []string{"love", "crush"}},
	{Glyph: "🤩", Codes: []string{"star_struck"}, Keywords: []string{"eyes", "wow"}},
	{Glyph: "😘", Codes: []string{"kissing_heart"}, Keywords: []string{"flirt"}},
	{Glyph: "😋", Codes: []string{"yum"}, Keywords: []string{"tongue", "food"}},
	{Glyph: "😜", Codes: []string{"stuck_out_tongue_winking_eye"}, Keywords: []string{"prank", "silly"}},
	{Glyph: "🤪", Codes: []string{"zany_face"}, Keywords: []string{"crazy", "goofy"}},
	{Glyph: "🤔", Codes: []string{"thinking"}, Keywords: []string{"hmm"}},
	{Glyph: "🤐", Codes: []string{"zipper_mouth_face"}, Keywords: []string{"secret", "silence"}},
	{Glyph: "😐", Codes: []string{"neutral_face"}, Keywords: []string{"meh"}},
	{Glyph: "😏", Codes: []string{"smirk"}, Keywords: []string{"smug"}},
	{Glyph: "🙄", Codes: []string{"roll_eyes"}, Keywords: []string{"eyeroll"}},
	{Glyph: "😬", Codes: []string{"grimacing"}, Keywords: []string{"awkward"}},
	{Glyph: "😌", Codes: []string{"relieved"}, Keywords: []string{"whew"}},
	{Glyph: "😴", Codes: []string{"sleeping"}, Keywords: []string{"zzz", "tired"}},
	{Glyph: "🤒", Codes: []string{"face_with_thermometer"}, Keywords: []string{"sick", "ill"}},
	{Glyph: "🥳", Codes: []string{"partying_face"}, Keywords: []string{"celebration", "birthday"}},
	{Glyph: "😎", Codes: []string{"sunglasses"}, Keywords: []string{"cool"}},
	{Glyph: "🤓", Codes: []string{"nerd_face"}, Keywords: []string{"geek"}},
	{Glyph: "😕", Codes: []string{"confused"}},
	{Glyph: "😮", Codes: []string{"open_mouth"}, Keywords: []string{"surprise", "wow"}},
	{Glyph: "😲", Codes: []string{"astonished"}, Keywords: []string{"amazed", "shocked"}},
	{Glyph: "🥺", Codes: []string{"pleading_face"}, Keywords: []string{"puppy", "please"}},
	{Glyph: "😢", Codes: []string{"cry"}, Keywords: []string{"sad", "tear"}},
	{Glyph: "😭", Codes: []string{"sob"}, Keywords: []string{"sad", "cry"}},
	{Glyph: "😱", Codes: []string{"scream"}, Keywords: []string{"horror", "shocked"}},
	{Glyph: "😤", Codes: []string{"triumph"}, Keywords: []string{"smug"}},
	{Glyph: "😡", Codes: []string{"rage", "pout"}, Keywords: []string{"angry"}},
	{Glyph: "😠", Codes: []string{"angry"}, Keywords: []string{"mad", "annoyed"}},
	{Glyph: "💀", Codes: []string{"skull"}, Keywords: []string{"dead", "danger"}},
	{Glyph: "💩", Codes: []string{"poop", "hankey"}, Keywords: []string{"crap"}},
	{Glyph: "🤡", Codes: []string{"clown_face"}, Keywords: []string{"clown"}},
	{Glyph: "👻", Codes: []string{"ghost"}, Keywords: []string{"halloween"}},
	{Glyph: "👽", Codes: []string{"alien"}, Keywords: []string{"ufo"}},
	{Glyph: "🤖", Codes: []string{"robot"}, Keywords: []string{"bot"}},
	{Glyph: "👋", Codes: []string{"wave"}, Keywords: []string{"hello", "goodbye"}},
	{Glyph: "👌", Codes: []string{"ok_hand"}, Keywords: []string{"perfect"}},
	{Glyph: "✌️", Codes: []string{"v"}, Keywords: []string{"victory", "peace"}},
	{Glyph: "🤞", Codes: []string{"crossed_fingers"}, Keywords: []string{"luck", "hopeful"}},
	{Glyph: "👍", Codes: []string{"+1", "thumbsup"}, Keywords: []string{"approve", "ok"}},
	{Glyph: "👎", Codes: []string{"-1", "thumbsdown"}, Keywords: []string{"disapprove", "bury"}},
	{Glyph: "👏", Codes: []string{"clap"}, Keywords: []string{"praise", "applause"}},
	{Glyph: "🙌", Codes: []string{"raised_hands"}, Keywords: []string{"hooray"}},
	{Glyph: "🙏", Codes: []string{"pray"}, Keywords: []string{"please", "thanks"}},
	{Glyph: "💪", Codes: []string{"muscle"}, Keywords: []string{"flex", "strong"}},
	{Glyph: "👀", Codes: []string{"eyes"}, Keywords: []string{"look", "see"}},
	{Glyph: "❤️", Codes: []string{"heart"}, Keywords: []string{"love"}},
	{Glyph: "🧡", Codes: []string{"orange_heart"}},
	{Glyph: "💛", Codes: []string{"yellow_heart"}},
	{Glyph: "💚", Codes: []string{"green_heart"}},
	{Glyph: "💙", Codes: []string{"blue_heart"}},
	{Glyph: "💜", Codes: []string{"purple_heart"}},
	{Glyph: "🖤", Codes: []string{"black_heart"}},
	{Glyph: "💔", Codes: []string{"broken_heart"}, Keywords: []string{"sad"}},
	{Glyph: "💯", Codes: []string{"100"}, Keywords: []string{"score", "perfect"}},
	{Glyph: "💥", Codes: []string{"boom", "collision"}, Keywords: []string{"explode"}},
	{Glyph: "💫", Codes: []string{"dizzy"}, Keywords: []string{"star"}},
	{Glyph: "💬", Codes: []string{"speech_balloon"}, Keywords: []string{"comment", "chat"}},
	{Glyph: "🔥", Codes: []string{"fire"}, Keywords: []string{"hot", "lit", "flame"}},
	{Glyph: "✨", Codes: []string{"sparkles"}, Keywords: []string{"shiny", "new"}},
	{Glyph: "⭐", Codes: []string{"star"}, Keywords: []string{"favorite"}},
	{Glyph: "🌟", Codes: []string{"star2"}, Keywords: []string{"glow"}},
	{Glyph: "⚡", Codes: []string{"zap"}, Keywords: []string{"lightning", "fast"}},
	{Glyph: "☀️", Codes: []string{"sunny"}, Keywords: []string{"weather", "summer"}},
	{Glyph: "🌧️", Codes: []string{"cloud_with_rain"}, Keywords: []string{"weather", "rain"}},
	{Glyph: "❄️", Codes: []string{"snowflake"}, Keywords: []string{"winter", "cold"}},
	{Glyph: "🌈", Codes: []string{"rainbow"}, Keywords: []string{"pride"}},
	{Glyph: "🌊", Codes: []string{"ocean"}, Keywords: []string{"sea", "wave", "beach"}},
	{Glyph: "🌲", Codes: []string{"evergreen_tree"}, Keywords: []string{"hike", "forest"}},
	{Glyph: "🌸", Codes: []string{"cherry_blossom"}, Keywords: []string{"flower", "spring"}},
	{Glyph: "🍕", Codes: []string{"pizza"}, Keywords: []string{"food", "dinner"}},
	{Glyph: "🍔", Codes: []string{"hamburger"}, Keywords: []string{"burger", "food"}},
	{Glyph: "🌮", Codes: []string{"taco"}, Keywords: []string{"food", "mexican"}},
	{Glyph: "🍣", Codes: []string{"sushi"}, Keywords: []string{"food", "japanese"}},
	{Glyph: "🍰", Codes: []string{"cake"}, Keywords: []string{"dessert", "birthday"}},
	{Glyph: "🎂", Codes: []string{"birthday"}, Keywords: []string{"cake", "party"}},
	{Glyph: "☕", Codes: []string{"coffee"}, Keywords: []string{"cafe", "morning"}},
	{Glyph: "🍺", Codes: []string{"beer"}, Keywords: []string{"drink", "bar"}},
	{Glyph: "🍻", Codes: []string{"beers"}, Keywords: []string{"cheers", "drinks"}},
	{Glyph: "🥂", Codes: []string{"clinking_glasses"}, Keywords: []string{"cheers", "toast"}},
	{Glyph: "🍷", Codes: []string{"wine_glass"}, Keywords: []string{"drink"}},
	{Glyph: "🎉", Codes: []string{"tada", "party"}, Keywords: []string{"celebration", "hooray"}},
	{Glyph: "🎊", Codes: []string{"confetti_ball"}, Keywords: []string{"celebration"}},
	{Glyph: "🎈", Codes: []string{"balloon"}, Keywords: []string{"party", "birthday"}},
	{Glyph: "🎁", Codes: []string{"gift"}, Keywords: []string{"present", "birthday"}},
	{Glyph: "🎶", Codes: []string{"notes"}, Keywords: []string{"music", "concert"}},
	{Glyph: "🎤", Codes: []string{"microphone"}, Keywords: []string{"karaoke", "sing"}},
	{Glyph: "🎸", Codes: []string{"guitar"}, Keywords: []string{"rock", "concert"}},
	{Glyph: "🎮", Codes: []string{"video_game"}, Keywords: []string{"play", "controller"}},
	{Glyph: "🎬", Codes: []string{"clapper"}, Keywords: []string{"movie", "film"}},
	{Glyph: "🎟️", Codes: []string{"tickets"}, Keywords: []string{"event", "admission"}},
	{Glyph: "⚽", Codes: []string{"soccer"}, Keywords: []string{"football", "sports"}},
	{Glyph: "🏀", Codes: []string{"basketball"}, Keywords: []string{"sports"}},
	{Glyph: "🎾", Codes: []string{"tennis"}, Keywords: []string{"sports"}},
	{Glyph: "🏃", Codes: []string{"runner", "running"}, Keywords: []string{"exercise", "marathon"}},
	{Glyph: "🚴", Codes: []string{"bicyclist"}, Keywords: []string{"bike", "cycling"}},
	{Glyph: "🏕️", Codes: []string{"camping"}, Keywords: []string{"outdoors", "tent"}},
	{Glyph: "🏖️", Codes: []string{"beach_umbrella"}, Keywords: []string{"vacation", "summer"}},
	{Glyph: "✈️", Codes: []string{"airplane"}, Keywords: []string{"flight", "travel"}},
	{Glyph: "🚗", Codes: []string{"car"}, Keywords: []string{"drive", "ride"}},
	{Glyph: "🏠", Codes: []string{"house"}, Keywords: []string{"home"}},
	{Glyph: "📍", Codes: []string{"round_pushpin"}, Keywords: []string{"location", "place"}},
	{Glyph: "📅", Codes: []string{"date"}, Keywords: []string{"calendar", "schedule"}},
	{Glyph: "⏰", Codes: []string{"alarm_clock"}, Keywords: []string{"time", "reminder"}},
	{Glyph: "📸", Codes: []string{"camera_flash"}, Keywords: []string{"photo", "picture"}},
	{Glyph: "📣", Codes: []string{"mega"}, Keywords: []string{"announcement", "loud"}},
	{Glyph: "💡", Codes: []string{"bulb"}, Keywords: []string{"idea"}},
	{Glyph: "📌", Codes: []string{"pushpin"}, Keywords: []string{"pin"}},
	{Glyph: "✅", Codes: []string{"white_check_mark"}, Keywords: []string{"done", "yes"}},
	{Glyph: "❌", Codes: []string{"x"}, Keywords: []string{"no", "cancel"}},
	{Glyph: "❓", Codes: []string{"question"}, Keywords: []string{"confused", "what"}},
	{Glyph: "❗", Codes: []string{"exclamation"}, Keywords: []string{"important"}},
	{Glyph: "⚠️", Codes: []string{"warning"}, Keywords: []string{"caution"}},
	{Glyph: "🚀", Codes: []string{"rocket"}, Keywords: []string{"ship", "launch"}},
	{Glyph: "🐶", Codes: []string{"dog"}, Keywords: []string{"puppy", "pet"}},
	{Glyph: "🐱", Codes: []string{"cat"}, Keywords: []string{"kitten", "pet"}},
	{Glyph: "🦄", Codes: []string{"unicorn"}, Keywords: []string{"magic"}},
}
